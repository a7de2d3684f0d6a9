package data

import (
	"fmt"
	"strings"

	"betty_server_go/config"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // регистрирует драйвер sqlite3
	log "github.com/sirupsen/logrus"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

var MainDB *sqlx.DB // основная БД: статьи со ссылками на изображения
var AuthDB *sqlx.DB // БД пользователей

// Driver - драйвер, с которым открыта MainDB.
var Driver = DriverSQLite

// buildDSN дополняет DSN параметрами, которые нужны слою данных.
func buildDSN(driver, dsn string) (string, error) {
	switch driver {
	case DriverSQLite:
		if strings.Contains(dsn, "?") {
			return dsn + "&_foreign_keys=on&_loc=auto", nil
		}
		return dsn + "?_foreign_keys=on&_loc=auto", nil
	case DriverMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("failed to parse mysql DSN: %w", err)
		}
		cfg.ParseTime = true
		// RowsAffected - найденные строки, а не измененные
		cfg.ClientFoundRows = true
		if cfg.Params == nil {
			cfg.Params = map[string]string{}
		}
		cfg.Params["charset"] = "utf8mb4"
		return cfg.FormatDSN(), nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func connect(driver, dsn string, schema []string) (*sqlx.DB, error) {
	fullDSN, err := buildDSN(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Connect(driver, fullDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	if err := ApplySchema(db, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ApplySchema выполняет выражения схемы по одному.
func ApplySchema(db *sqlx.DB, schema []string) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema: %w", err)
		}
	}
	return nil
}

// InitMainDB открывает основную БД и применяет схему.
func InitMainDB(driver, dsn string) error {
	db, err := connect(driver, dsn, GetMainSchema(driver))
	if err != nil {
		return fmt.Errorf("main database: %w", err)
	}
	MainDB = db
	Driver = driver
	log.Infof("Основная БД подключена (%s), схема применена.", driver)

	if err := EnsureArticlesSchemaUpgrade(); err != nil {
		return fmt.Errorf("failed to upgrade articles schema: %w", err)
	}
	return nil
}

// InitAuthDB открывает БД пользователей и применяет схему.
func InitAuthDB(driver, dsn string) error {
	db, err := connect(driver, dsn, GetAuthSchema(driver))
	if err != nil {
		return fmt.Errorf("auth database: %w", err)
	}
	AuthDB = db
	log.Infof("БД пользователей подключена (%s), схема применена.", driver)
	return nil
}

// InitDB инициализирует обе БД по настройкам.
func InitDB(cfg *config.Settings) error {
	log.Info("Initializing databases...")
	if err := InitAuthDB(cfg.DBDriver, cfg.AuthDBDSN); err != nil {
		return fmt.Errorf("failed to initialize AuthDB: %w", err)
	}
	if err := InitMainDB(cfg.DBDriver, cfg.DBDSN); err != nil {
		return fmt.Errorf("failed to initialize MainDB: %w", err)
	}
	log.Info("All databases initialized successfully.")
	return nil
}

// CloseDB закрывает открытые подключения.
func CloseDB() {
	if MainDB != nil {
		MainDB.Close()
	}
	if AuthDB != nil {
		AuthDB.Close()
	}
}

// EnsureArticlesSchemaUpgrade добавляет колонки, которых не было в старых SQLite базах.
func EnsureArticlesSchemaUpgrade() error {
	if Driver != DriverSQLite {
		return nil
	}
	for _, column := range []string{"ImageAlt", "ImageCaption"} {
		var exists bool
		err := MainDB.Get(&exists, `
			SELECT COUNT(*) > 0
			FROM pragma_table_info('Articles')
			WHERE name = ?`, column)
		if err != nil {
			log.Warnf("Ошибка проверки колонки %s: %v", column, err)
			continue
		}
		if exists {
			continue
		}
		if _, err := MainDB.Exec(`ALTER TABLE Articles ADD COLUMN ` + column + ` TEXT`); err != nil {
			return fmt.Errorf("failed to add %s column: %w", column, err)
		}
		log.Infof("Добавлена колонка %s в таблицу Articles", column)
	}
	return nil
}
