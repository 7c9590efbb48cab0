package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	rabbitmq "github.com/rabbitmq/amqp091-go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"atelier/cmd"
	"atelier/db/migrations"
	httpadapter "atelier/internal/adapters/in/http"
	amqpadapter "atelier/internal/adapters/out/amqp"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	runMigrations(configs)
	gormDB := connectToDatabase(configs)
	notifier := connectToBroker(configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, notifier)

	jobManager := app.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:    goDotEnvVariable("AMQP_URL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func runMigrations(configs cmd.Config) {
	connectionString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		configs.DBUser, configs.DBPassword, configs.DBHost, configs.DBPort, configs.DBName, configs.DBSslMode)
	if err := migrations.Run(connectionString); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}
}

func connectToDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError maps driver duplicate-key failures onto
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func connectToBroker(configs cmd.Config, logger *slog.Logger) *amqpadapter.RabbitMQNotifier {
	conn, err := rabbitmq.Dial(configs.AmqpURL)
	if err != nil {
		log.Fatalf("Error connecting to message broker: %v", err)
	}

	notifier, err := amqpadapter.NewRabbitMQNotifier(conn, logger)
	if err != nil {
		log.Fatalf("Error creating notifier: %v", err)
	}
	return notifier
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateRegisterUserCommandHandler(),
		app.CreateChangeUserRoleCommandHandler(),
		app.CreateUpdateUserStatusCommandHandler(),
		app.CreateCreateOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateAssignWorkerCommandHandler(),
		app.CreateUpdateOrderProgressCommandHandler(),
		app.CreateRateWorkerCommandHandler(),
		app.CreateSetWorkerAvailabilityCommandHandler(),
		app.CreateGetOrderByIDQueryHandler(),
		app.CreateGetCustomerOrdersQueryHandler(),
		app.CreateGetAssignedOrdersQueryHandler(),
		app.CreateGetAllOrdersQueryHandler(),
		app.CreateGetWorkerWorkloadQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
