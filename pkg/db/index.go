package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Factory = map[string]func(string) gorm.Dialector{}

// Open connects to dsn with the dialector registered under driver.
func Open(driver, dsn string) (*gorm.DB, error) {
	dialector, ok := Factory[driver]
	if !ok {
		return nil, fmt.Errorf("db: unknown driver %q", driver)
	}
	return gorm.Open(dialector(dsn), &gorm.Config{Logger: logger.Discard})
}
