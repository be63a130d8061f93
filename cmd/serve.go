package cmd

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vibast-solutions/ms-go-internship/app/controller"
	internshipgrpc "github.com/vibast-solutions/ms-go-internship/app/grpc"
	"github.com/vibast-solutions/ms-go-internship/app/middleware"
	"github.com/vibast-solutions/ms-go-internship/app/repository"
	"github.com/vibast-solutions/ms-go-internship/app/service"
	"github.com/vibast-solutions/ms-go-internship/config"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  `Start the HTTP (Echo) console and, when REPORTING_API_KEY is set, the gRPC reporting server.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type services struct {
	accounts  service.AccountService
	sessions  service.SessionService
	catalog   service.CatalogService
	dashboard service.DashboardService
	profiles  service.ProfileService
	reporting service.ReportingService
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := openDB(cfg, cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	gw := repository.NewGateway(db, cfg.MySQL.Database)
	users := repository.NewUserRepository(gw)
	students := repository.NewStudentRepository(gw)
	companies := repository.NewCompanyRepository(gw)
	internships := repository.NewInternshipRepository(gw)
	applications := repository.NewApplicationRepository(gw)

	svc := &services{
		accounts:  service.NewAccountService(users, students, companies, service.NewLogMailer(), cfg.Password),
		sessions:  service.NewSessionService(cfg.Session),
		catalog:   service.NewCatalogService(students, companies, internships, applications),
		dashboard: service.NewDashboardService(students, companies, internships, applications),
		profiles:  service.NewProfileService(students, companies),
		reporting: service.NewReportingService(gw),
	}

	if cfg.Admin.Password != "" {
		action, err := svc.accounts.EnsureAdmin(context.Background(), cfg.Admin)
		if err != nil {
			logrus.WithError(err).Error("Failed to ensure admin account")
		} else {
			logrus.WithFields(logrus.Fields{
				"username": cfg.Admin.Username,
				"action":   action,
			}).Info("Admin account checked")
		}
	}

	metrics := middleware.NewMetrics()
	metrics.RegisterDB(db, cfg.MySQL.Database)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var grpcServer *grpc.Server
	if cfg.Reporting.Enabled() {
		grpcServer = startGRPCServer(cfg, svc)
	} else {
		logrus.Info("REPORTING_API_KEY not set, gRPC reporting server disabled")
	}

	e := newHTTPServer(cfg, db, svc, metrics)
	go func() {
		addr := cfg.HTTP.Addr()
		logrus.WithField("addr", addr).Info("Starting HTTP server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("HTTP server shutdown failed")
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
}

func newHTTPServer(cfg *config.Config, db *sql.DB, svc *services, metrics *middleware.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			if principal := middleware.PrincipalFrom(c); principal != nil {
				fields["username"] = principal.Username
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(metrics.Middleware())

	router := &controller.Router{
		Auth:      controller.NewAuthController(svc.accounts, svc.sessions, cfg.Session),
		Catalog:   controller.NewCatalogController(svc.catalog),
		Pages:     controller.NewPageController(svc.dashboard, svc.catalog, svc.profiles, svc.reporting),
		Reporting: controller.NewReportingController(svc.reporting, metrics),
		Health:    controller.NewHealthController(db),
		Sessions:  middleware.NewSessionMiddleware(svc.sessions, cfg.Session.CookieName),
		APIKey:    middleware.NewAPIKeyMiddleware(cfg.Reporting.APIKey),
		Metrics:   metrics,
	}
	router.Register(e)

	return e
}

func startGRPCServer(cfg *config.Config, svc *services) *grpc.Server {
	addr := cfg.GRPC.Addr()
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(internshipgrpc.APIKeyUnaryInterceptor(cfg.Reporting.APIKey)),
		grpc.StreamInterceptor(internshipgrpc.APIKeyStreamInterceptor(cfg.Reporting.APIKey)),
	)
	internshipgrpc.RegisterReportingServer(grpcServer, internshipgrpc.NewReportingServer(svc.reporting))

	go func() {
		logrus.WithField("addr", addr).Info("Starting gRPC server")
		if err := grpcServer.Serve(lis); err != nil {
			logrus.WithError(err).Fatal("Failed to start gRPC server")
		}
	}()
	return grpcServer
}
