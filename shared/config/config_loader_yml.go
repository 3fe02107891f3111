package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// универсальная функция загрузки конфига из .yml файла (используем дженерики)
// fn - функция конструктор конфига со значениями по умолчанию
//
// Переменные окружения вида ${NAME} внутри файла подставляются до парсинга,
// поэтому секреты можно не хранить в самом файле.
func LoadYAMLConfig[T any](configPath string, fn func() *T) (*T, error) {
	// На этом этапе в config будут значения по умолчанию, заданные в конструкторе.
	config := fn()

	// пустой путь - работаем на значениях по умолчанию
	if configPath == "" {
		return config, nil
	}

	// файла нет - тоже значения по умолчанию, БЕЗ ошибки
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	// файл есть, но его не удалось прочитать или распарсить - это ошибка
	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	expanded := os.ExpandEnv(string(yamlFile))

	// анмаршалим поверх дефолтов: поля, которых нет в файле, остаются дефолтными
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}

	return config, nil
}
