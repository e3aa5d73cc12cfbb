package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const seedPrefix = "ID_SEED_"

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Log    LogConfig
	IDs    IDConfig
	Import ImportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// IDConfig valores iniciales del secuenciador de IDs, por categoría (product, supplier, ...).
// Se leen de ID_SEED_<CATEGORIA>, ej. ID_SEED_PRODUCT=1500 al importar datos existentes.
type IDConfig struct {
	Seeds map[string]int64
}

// ImportConfig archivo de catálogo a importar con cmd/seed_catalog.
type ImportConfig struct {
	File     string // CSV de proveedores y productos
	Encoding string // utf-8 o iso-8859-1
	Location string // ubicación donde se carga el stock inicial
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, LOG_LEVEL, ID_SEED_PRODUCT, IMPORT_FILE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	seeds, err := loadSeeds(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "inventario-core"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		IDs: IDConfig{
			Seeds: seeds,
		},
		Import: ImportConfig{
			File:     getString(v, "IMPORT_FILE", "catalogo.csv"),
			Encoding: strings.ToLower(getString(v, "IMPORT_ENCODING", "utf-8")),
			Location: getString(v, "IMPORT_LOCATION", "principal"),
		},
	}

	return cfg, nil
}

// loadSeeds reúne las claves ID_SEED_* del entorno y del archivo de configuración.
// Un valor no numérico es un error: sembrar 0 reiniciaría el contador sobre IDs ya importados.
func loadSeeds(v *viper.Viper) (map[string]int64, error) {
	keys := make(map[string]struct{})
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, seedPrefix) {
			keys[name] = struct{}{}
		}
	}
	for _, k := range v.AllKeys() {
		if up := strings.ToUpper(k); strings.HasPrefix(up, seedPrefix) {
			keys[up] = struct{}{}
		}
	}

	seeds := make(map[string]int64, len(keys))
	for k := range keys {
		category := strings.ToLower(strings.TrimPrefix(k, seedPrefix))
		if category == "" {
			continue
		}
		n, err := getInt64(v, k)
		if err != nil {
			return nil, err
		}
		seeds[category] = n
	}
	return seeds, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt64(v *viper.Viper, key string) (int64, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q no es un entero válido: %w", key, raw, err)
	}
	return n, nil
}
