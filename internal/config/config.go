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

package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cm   *ConfigManager
	once sync.Once
	Conf *Config
)

// Config is the resolved server configuration. Values come from the
// YAML config file, DESKFLOW_* environment variables and command-line
// flags, in ascending precedence.
type Config struct {
	Listen         string
	LogLevel       string
	DatabaseDriver string
	DatabaseDSN    string
	// TokenSecret signs both token families. Injected into the codec
	// at startup; nothing else reads it.
	TokenSecret string
	StaticDir   string
	DownloadDir string
	// Advertised server addresses returned by /server_address.
	IDServer      string
	RelayServer   string
	APIServer     string
	PublicKeyFile string
}

type ConfigManager struct {
	v *viper.Viper
}

// NewConfigManager returns the process-wide ConfigManager instance.
func NewConfigManager() *ConfigManager {
	once.Do(func() {
		cm = &ConfigManager{v: viper.New()}
	})
	return cm
}

// Viper returns the underlying viper instance.
func (cm *ConfigManager) Viper() *viper.Viper {
	return cm.v
}

func (cm *ConfigManager) LoadConf(cmd *cobra.Command, configFile string) error {
	v := cm.v
	v.SetConfigType("yaml")

	v.SetDefault("listen", ":21114")
	v.SetDefault("log-level", "info")
	v.SetDefault("database-driver", "sqlite")
	v.SetDefault("database-dsn", "./deskflow.sqlite3")
	v.SetDefault("token-secret", "deskflow api server")
	v.SetDefault("id-server", "0.0.0.0:21116")
	v.SetDefault("relay-server", "0.0.0.0:21117")
	v.SetDefault("api-server", "0.0.0.0:21114")
	v.SetDefault("public-key-file", "id_ed25519.pub")

	if configFile != "" {
		v.SetConfigFile(configFile)
		// 配置文件不存在时按默认值创建一个
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			if err := v.SafeWriteConfigAs(configFile); err != nil {
				return fmt.Errorf("创建配置文件失败: %v", err)
			}
		}
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	v.SetEnvPrefix("DESKFLOW")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	Conf = &Config{
		Listen:         v.GetString("listen"),
		LogLevel:       v.GetString("log-level"),
		DatabaseDriver: v.GetString("database-driver"),
		DatabaseDSN:    v.GetString("database-dsn"),
		TokenSecret:    v.GetString("token-secret"),
		StaticDir:      v.GetString("static-dir"),
		DownloadDir:    v.GetString("download-dir"),
		IDServer:       v.GetString("id-server"),
		RelayServer:    v.GetString("relay-server"),
		APIServer:      v.GetString("api-server"),
		PublicKeyFile:  v.GetString("public-key-file"),
	}

	return nil
}
