package data

// Схемы хранятся списком отдельных выражений: драйвер MySQL по умолчанию
// не выполняет несколько выражений за один Exec.

var sqliteUsersSchema = []string{`
CREATE TABLE IF NOT EXISTS Users (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Email TEXT NOT NULL UNIQUE,
    DisplayName TEXT NOT NULL,
    PasswordHash TEXT NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
)`,
}

var sqliteMainSchema = []string{`
CREATE TABLE IF NOT EXISTS Articles (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Title TEXT NOT NULL,
    Image INTEGER,         -- ID изображения в Betty, NULL - нет изображения
    ImageAlt TEXT,
    ImageCaption TEXT,
    ListingImage INTEGER,  -- без alt/caption
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_updated ON Articles (UpdatedAt)`,
}

var mysqlUsersSchema = []string{`
CREATE TABLE IF NOT EXISTS Users (
    Id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    Email VARCHAR(255) NOT NULL UNIQUE,
    DisplayName VARCHAR(255) NOT NULL,
    PasswordHash VARCHAR(255) NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var mysqlMainSchema = []string{`
CREATE TABLE IF NOT EXISTS Articles (
    Id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    Title VARCHAR(255) NOT NULL,
    Image BIGINT NULL,
    ImageAlt TEXT NULL,
    ImageCaption TEXT NULL,
    ListingImage BIGINT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL,
    INDEX idx_articles_updated (UpdatedAt)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// GetMainSchema возвращает схему основной БД для драйвера.
func GetMainSchema(driver string) []string {
	if driver == DriverMySQL {
		return mysqlMainSchema
	}
	return sqliteMainSchema
}

// GetAuthSchema возвращает схему БД пользователей для драйвера.
func GetAuthSchema(driver string) []string {
	if driver == DriverMySQL {
		return mysqlUsersSchema
	}
	return sqliteUsersSchema
}
