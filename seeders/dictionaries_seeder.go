package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type facultySeed struct {
	Name        string
	Description string
	Directions  []directionSeed
}

type directionSeed struct {
	Name        string
	Description string
}

var facultiesData = []facultySeed{
	{
		Name:        "Факультет информатики",
		Description: "Факультет информационных технологий и программирования",
		Directions: []directionSeed{
			{"Программная инженерия", "Разработка программного обеспечения"},
			{"Информационные системы", "Проектирование и администрирование ИС"},
			{"Кибербезопасность", "Защита информации и систем"},
		},
	},
	{
		Name:        "Инженерный факультет",
		Description: "Инженерные специальности и технические науки",
		Directions: []directionSeed{
			{"Машиностроение", "Конструирование и производство машин"},
			{"Автоматизация", "Автоматизация технологических процессов"},
		},
	},
	{
		Name:        "Экономический факультет",
		Description: "Экономика, менеджмент и бизнес",
		Directions: []directionSeed{
			{"Экономика предприятия", "Управление экономикой предприятий"},
			{"Международная экономика", "Международные экономические отношения"},
		},
	},
	{
		Name:        "Факультет энергетики",
		Description: "Энергетические системы и технологии",
		Directions: []directionSeed{
			{"Электроэнергетика", "Электрические станции и сети"},
			{"Возобновляемая энергетика", "Альтернативные источники энергии"},
		},
	},
}

type companySeed struct {
	Name     string
	Website  string
	Industry string
	Location string
}

var companiesData = []companySeed{
	{"EPAM Systems", "https://epam.com", "IT", "Ташкент"},
	{"UZINFOCOM", "https://uzinfocom.uz", "IT", "Ташкент"},
	{"UzbekTelecom", "https://uztelecom.uz", "Телекоммуникации", "Ташкент"},
	{"Artel", "https://artelelectronics.com", "Электроника", "Ташкент"},
	{"Uzautomotors", "https://uzautomotors.com", "Автомобилестроение", "Андижан"},
	{"Narx.uz", "https://narx.uz", "E-commerce", "Ташкент"},
	{"ITIC", "https://itic.uz", "IT", "Ташкент"},
	{"Kapitalbank", "https://kapitalbank.uz", "Банковское дело", "Ташкент"},
	{"UzbekEnergo", "https://uzbekenergo.uz", "Энергетика", "Ташкент"},
	{"AGMK", "https://agmk.uz", "Горнодобыча", "Алмалык"},
}

func seedFaculties(ctx context.Context, db *pgxpool.Pool) error {
	for _, f := range facultiesData {
		var facultyID uint64
		err := db.QueryRow(ctx, "SELECT id FROM faculties WHERE name = $1", f.Name).Scan(&facultyID)
		if err != nil {
			err = db.QueryRow(ctx,
				"INSERT INTO faculties (name, description) VALUES ($1, $2) RETURNING id",
				f.Name, f.Description,
			).Scan(&facultyID)
			if err != nil {
				return fmt.Errorf("не удалось создать факультет %q: %w", f.Name, err)
			}
			log.Printf("  - создан факультет %q", f.Name)
		}

		for _, d := range f.Directions {
			_, err := db.Exec(ctx, `
				INSERT INTO directions (faculty_id, name, description)
				VALUES ($1, $2, $3)
				ON CONFLICT (faculty_id, name) DO NOTHING
			`, facultyID, d.Name, d.Description)
			if err != nil {
				return fmt.Errorf("не удалось создать направление %q: %w", d.Name, err)
			}
		}
	}
	return nil
}

func seedCompanies(ctx context.Context, db *pgxpool.Pool) error {
	for _, c := range companiesData {
		_, err := db.Exec(ctx, `
			INSERT INTO companies (name, website, industry, location)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING
		`, c.Name, c.Website, c.Industry, c.Location)
		if err != nil {
			return fmt.Errorf("не удалось создать компанию %q: %w", c.Name, err)
		}
	}
	return nil
}
