// описание конфига для подключения к MongoDB (хранилище задач)
package config

import (
	"fmt"
	"strings"
	"time"
)

// структура конфига MongoDB.
// Уровни согласованности (secondary-preferred чтение, majority запись) задаются в shared/mongo_db.
type MongoDBConfig struct {
	URI            string        // строка подключения к replica set
	Database       string        // имя базы
	Collection     string        // коллекция задач
	ConnectTimeout time.Duration // таймаут на подключение и первый ping
	MaxPoolSize    uint64        // максимальное количество соединений в пуле
	WriteTimeout   time.Duration // таймаут одной операции записи (majority ждёт реплики)
}

// NewMongoDBConfigFromEnv создает конфиг MongoDB из переменных окружения
func NewMongoDBConfigFromEnv() (*MongoDBConfig, error) {
	var errs []string

	uri := getEnvWithDefault("MONGODB_URI", "mongodb://localhost:27017/")
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		errs = append(errs, fmt.Sprintf("MONGODB_URI: unsupported scheme in %q", uri))
	}

	connectTimeout, err := getEnvAsDurationWithValidation("MONGODB_CONNECT_TIMEOUT", 10*time.Second, time.Second, time.Minute)
	if err != nil {
		errs = append(errs, err.Error())
	}

	writeTimeout, err := getEnvAsDurationWithValidation("MONGODB_WRITE_TIMEOUT", 5*time.Second, 100*time.Millisecond, time.Minute)
	if err != nil {
		errs = append(errs, err.Error())
	}

	maxPoolSize, err := getEnvAsInt32WithValidation("MONGODB_MAX_POOL_SIZE", 100, 1, 1000)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n%s", strings.Join(errs, "\n"))
	}

	return &MongoDBConfig{
		URI:            uri,
		Database:       getEnvWithDefault("MONGODB_DATABASE", "todo_app"),
		Collection:     getEnvWithDefault("MONGODB_TASKS_COLLECTION", "tasks"),
		ConnectTimeout: connectTimeout,
		MaxPoolSize:    uint64(maxPoolSize),
		WriteTimeout:   writeTimeout,
	}, nil
}
