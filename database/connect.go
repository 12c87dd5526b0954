package database

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Migrator func(db *gorm.DB) error

type Configuration struct {
	path       string
	migrations []Migrator
}

type Configurator func(c *Configuration)

func SetPath(path string) Configurator {
	return func(c *Configuration) {
		c.path = path
	}
}

func SetMigrations(migrations ...Migrator) Configurator {
	return func(c *Configuration) {
		c.migrations = append(c.migrations, migrations...)
	}
}

// Connect opens the snapshot database and applies the registered migrations.
// Failure to do either is fatal to the service.
func Connect(l logrus.FieldLogger, configurators ...Configurator) *gorm.DB {
	c := &Configuration{path: "file::memory:?cache=shared"}
	for _, configurator := range configurators {
		configurator(c)
	}

	db, err := gorm.Open(sqlite.Open(c.path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		l.WithError(err).Fatalf("Unable to connect to database [%s].", c.path)
	}

	for _, m := range c.migrations {
		if err = m(db); err != nil {
			l.WithError(err).Fatalf("Unable to migrate database.")
		}
	}
	l.Infof("Connected to database [%s].", c.path)
	return db
}
