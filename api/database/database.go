// Copyright 2025 The Deskflow Authors, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"fmt"

	"deskflow/api/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSqlite = "sqlite"
	DriverMysql  = "mysql"
)

// Open connects to the configured database and migrates the schema.
// TranslateError is on so duplicate-key violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Open(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case DriverSqlite, "":
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	case DriverMysql:
		db, err = gorm.Open(mysql.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.User{}, &model.AddressBook{}); err != nil {
		return nil, err
	}

	return db, nil
}
