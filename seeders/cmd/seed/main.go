package main

import (
	"flag"
	"log"

	"alumni-system/pkg/config"
	"alumni-system/pkg/database/postgresql"
	"alumni-system/seeders"
)

func main() {
	runDictionaries := flag.Bool("dictionaries", false, "Наполнить справочники (факультеты, направления, компании)")
	runAdmin := flag.Bool("admin", false, "Создать администратора")
	runSample := flag.Bool("sample", false, "Создать тестовых преподавателей и студентов")
	runAll := flag.Bool("all", false, "Запустить все сидеры")

	flag.Parse()

	if !*runDictionaries && !*runAdmin && !*runSample && !*runAll {
		log.Println("Не выбран ни один сидер для запуска.")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	if *runAll || *runDictionaries {
		seeders.SeedDictionaries(db)
	}
	if *runAll || *runAdmin {
		seeders.SeedAdmin(db)
	}
	if *runAll || *runSample {
		seeders.SeedSampleData(db)
	}

	log.Println("Сидеры выполнены")
}
