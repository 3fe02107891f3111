package core

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"todo_list/shared/jwt_service"
	mongodb "todo_list/shared/mongo_db"
	"todo_list/task_service/configs"
	taskserver "todo_list/task_service/internal/task_server"
	"todo_list/task_service/internal/task_server/handlers"
	"todo_list/task_service/internal/task_server/repository"
	"todo_list/task_service/internal/task_server/service"
)

// Dependencies содержит все зависимости task_service
type TaskServiceDependencies struct {
	TaskConfig *configs.TaskServiceConfig
	Server     *taskserver.TaskServer
	mongo      mongodb.MongoRepoInterface
}

// InitDependencies: конфиг -> MongoDB -> репозиторий -> сервис -> сервер
func InitDependencies(ctx context.Context, envFile string, logger *slog.Logger) (*TaskServiceDependencies, error) {
	logger.Info("runtime", "gomaxprocs", runtime.GOMAXPROCS(-1))

	conf, err := configs.LoadConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	mongoRepo, err := mongodb.NewMongoRepo(ctx, conf.MongoDBConf)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	logger.Info("connected to mongo", "database", conf.MongoDBConf.Database, "collection", conf.MongoDBConf.Collection)

	deps := &TaskServiceDependencies{TaskConfig: conf, mongo: mongoRepo}

	store := repository.NewMongoTaskRepository(mongoRepo.Collection(), mongoRepo, conf.MongoDBConf.WriteTimeout)
	jwtManager := jwt_service.NewJWTService(conf.JWTConfig)

	taskService := service.NewTaskService(store, logger)
	taskHandler := handlers.NewTaskHandler(taskService, logger)

	deps.Server, err = taskserver.NewTaskServer(conf.ServerConf, taskHandler, jwtManager, logger, conf.AllowedOrigins...)
	if err != nil {
		deps.Close(ctx)
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return deps, nil
}

// Close отключает клиента MongoDB
func (d *TaskServiceDependencies) Close(ctx context.Context) error {
	if d.mongo == nil {
		return nil
	}
	if err := d.mongo.Close(ctx); err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	return nil
}
