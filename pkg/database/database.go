// Package database handles database connectivity
package database

import (
	"database/sql"

	"lipapay/pkg/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB gorm handle
var DB *gorm.DB

// SQLDB underlying sql.DB handle, used for pool tuning
var SQLDB *sql.DB

// Connect opens the database connection
func Connect(dbConfig gorm.Dialector, _logger gormlogger.Interface) {
	var err error
	DB, err = gorm.Open(dbConfig, &gorm.Config{
		Logger: _logger,
	})
	if err != nil {
		logger.ErrorString("Database", "Connect", err.Error())
		panic(err)
	}

	SQLDB, err = DB.DB()
	if err != nil {
		logger.ErrorString("Database", "SQLDB", err.Error())
		panic(err)
	}
}

// AutoMigrate migrates all registered tables
func AutoMigrate(tables []interface{}) error {
	return DB.AutoMigrate(tables...)
}
