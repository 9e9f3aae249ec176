package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/portal-admin/internal/application/analytics"
	"github.com/jhoicas/portal-admin/internal/application/auth"
	"github.com/jhoicas/portal-admin/internal/application/chat"
	"github.com/jhoicas/portal-admin/internal/application/notification"
	"github.com/jhoicas/portal-admin/internal/application/reports"
	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/application/usecase"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
	infraemail "github.com/jhoicas/portal-admin/internal/infrastructure/email"
	"github.com/jhoicas/portal-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/portal-admin/internal/infrastructure/persistence"
	"github.com/jhoicas/portal-admin/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/portal-admin/internal/interfaces/http"
	"github.com/jhoicas/portal-admin/pkg/config"
	"github.com/jhoicas/portal-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	repo, closeRepo, err := persistence.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento de la instantánea")
	}
	defer closeRepo()

	initial := entity.State{}
	if cfg.Store.Seed {
		initial = store.Seed(time.Now().UTC())
	}
	st := store.New(initial, store.WithRepository(repo), store.WithLogger(log))
	if err := st.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("rehidratar estado")
	}

	// Correo: el portal llama a la función remota; la función entrega por SMTP.
	functionKey := cfg.Email.FunctionKey
	if functionKey == "" {
		functionKey = uuid.NewString()
		log.Warn().Msg("EMAIL_FUNCTION_KEY vacío: se generó una clave efímera; clientes externos deberán usar JWT")
	}
	emailFn := infraemail.NewFunctionClient(cfg.Email.FunctionURL, functionKey)
	notifier := notification.NewNotifier(emailFn)
	dispatcher := notification.NewDispatcher(
		cfg.Email.ConnectionString, cfg.Email.SenderAddress,
		infraemail.NewSMTPMailerFromConnectionString, log,
	)

	chatSvc := chat.NewService(st, chat.WithBotDelay(cfg.Chat.BotDelay), chat.WithLogger(log))
	reportSvc := reports.NewService(st, pdf.NewMarotoReportGenerator(), spreadsheet.NewWriter(), notifier, log)

	authUC := auth.NewAuthUseCase(st, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Portal Administrativo API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:        st,
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(st, notifier),
		CompanyUC:    usecase.NewCompanyUseCase(st, chatSvc),
		ProductUC:    usecase.NewProductUseCase(st, notifier),
		Permissions:  usecase.NewPermissionService(st),
		DashboardUC:  analytics.NewDashboardUseCase(st),
		Reports:      reportSvc,
		Chat:         chatSvc,
		Dispatcher:   dispatcher,
		LoginLimiter: httpRouter.NewIPRateLimiter(cfg.HTTP.LoginRatePerMinute),
		EmailLimiter: httpRouter.NewIPRateLimiter(cfg.HTTP.EmailRatePerMinute),
		FunctionKey:  functionKey,
		JWTSecret:    cfg.JWT.Secret,
		AppName:      cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Respuestas del bot pendientes: se descartan.
	chatSvc.Close()

	log.Info().Msg("aplicación detenida")
}
