package bootstrap

import (
	"html/template"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/classlens/admin-panel/internal/app/controllers"
	appRoutes "github.com/classlens/admin-panel/internal/app/routes"
	appServices "github.com/classlens/admin-panel/internal/app/services"
	"github.com/classlens/admin-panel/internal/classlens"
	"github.com/classlens/admin-panel/internal/config"
	appMiddleware "github.com/classlens/admin-panel/internal/middleware"
	"github.com/classlens/admin-panel/internal/pkg/logger"
	"github.com/classlens/admin-panel/internal/pkg/session"
	"github.com/classlens/admin-panel/internal/web"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	API                  *classlens.Client
	Sessions             *session.Manager
	AuthController       *appControllers.AuthController
	OverviewController   *appControllers.OverviewController
	StudentController    *appControllers.StudentController
	TeacherController    *appControllers.TeacherController
	SubjectController    *appControllers.SubjectController
	MappingController    *appControllers.MappingController
	EnrollmentController *appControllers.EnrollmentController
	AdminUserController  *appControllers.AdminUserController
	BulkController       *appControllers.BulkController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies wires the backend client, session store, services and
// controllers together.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.API = classlens.NewClient(cfg, lgr)
	lgr.Info().Str("baseURL", deps.API.BaseURL()).Msg("Backend API client configured")

	deps.Sessions = session.NewManager(cfg.Session.CookieName, cfg.Session.StateFile, cfg.SessionTTL(), lgr)
	lgr.Info().Int("restored", deps.Sessions.Count()).Msg("Session store ready")

	studentService := appServices.NewStudentService(deps.API)
	teacherService := appServices.NewTeacherService(deps.API)
	subjectService := appServices.NewSubjectService(deps.API)
	mappingService := appServices.NewMappingService(deps.API)
	enrollmentService := appServices.NewEnrollmentService(deps.API)
	adminUserService := appServices.NewAdminUserService(deps.API)
	bulkService := appServices.NewBulkService(deps.API)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Sessions)

	deps.AuthController = appControllers.NewAuthController(deps.API, deps.Sessions, lgr)
	deps.OverviewController = appControllers.NewOverviewController(deps.API, deps.Sessions, lgr)
	deps.StudentController = appControllers.NewStudentController(studentService, deps.Sessions, lgr)
	deps.TeacherController = appControllers.NewTeacherController(teacherService, deps.Sessions, lgr)
	deps.SubjectController = appControllers.NewSubjectController(subjectService, deps.Sessions, lgr)
	deps.MappingController = appControllers.NewMappingController(mappingService, deps.Sessions, lgr)
	deps.EnrollmentController = appControllers.NewEnrollmentController(enrollmentService, deps.Sessions, lgr)
	deps.AdminUserController = appControllers.NewAdminUserController(adminUserService, deps.Sessions, lgr)
	deps.BulkController = appControllers.NewBulkController(bulkService, deps.Sessions, cfg.UploadAutoCloseDelay(), lgr)

	return deps, nil
}

// SetupRouter creates the gin engine, loads the embedded templates and
// registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.OverviewController,
		deps.StudentController,
		deps.TeacherController,
		deps.SubjectController,
		deps.MappingController,
		deps.EnrollmentController,
		deps.AdminUserController,
		deps.BulkController,
		deps.AuthMiddleware,
	)

	return router, nil
}
