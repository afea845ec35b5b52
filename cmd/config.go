package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string
	TimeZone   string

	NbDecimalDigitForUnitPrice int32
	NbDecimalDigitForBomQty    int32

	SupplychainEnabled              bool
	FinishMoAutomaticEmail          bool
	FinishMoMessageTemplateName     string
	PartFinishMoAutomaticEmail      bool
	PartFinishMoMessageTemplateName string
	TemplateCacheTTL                time.Duration

	OperationsFinishedSchedule string
	OperationsFinishedTimeout  time.Duration
}

// DSN is the libpq keyword connection string used by gorm and the migrations.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}


func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
