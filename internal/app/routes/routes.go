package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/classlens/admin-panel/internal/app/controllers"
	"github.com/classlens/admin-panel/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	overviewController *controllers.OverviewController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	subjectController *controllers.SubjectController,
	mappingController *controllers.MappingController,
	enrollmentController *controllers.EnrollmentController,
	adminUserController *controllers.AdminUserController,
	bulkController *controllers.BulkController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public auth routes ---
	router.GET("/login", authController.ShowLogin)
	router.POST("/login", authController.Login)
	router.GET("/register", authController.ShowRegister)
	router.POST("/register", authController.Register)
	router.GET("/logout", authController.Logout)
	router.POST("/logout", authController.Logout)

	// --- Authenticated dashboard routes ---
	dashboard := router.Group("")
	dashboard.Use(authMiddleware.RequireSession())
	{
		dashboard.GET("/", overviewController.Show)

		students := dashboard.Group("/students")
		{
			students.GET("", studentController.List)
			students.GET("/new", studentController.New)
			students.GET("/:id/edit", studentController.Edit)
			students.POST("/save", studentController.Save)
			students.POST("/:id/delete", studentController.Delete)
		}

		teachers := dashboard.Group("/teachers")
		{
			teachers.GET("", teacherController.List)
			teachers.GET("/new", teacherController.New)
			teachers.GET("/:id/edit", teacherController.Edit)
			teachers.POST("/save", teacherController.Save)
			teachers.POST("/:id/delete", teacherController.Delete)
		}

		subjects := dashboard.Group("/subjects")
		{
			subjects.GET("", subjectController.List)
			subjects.GET("/new", subjectController.New)
			subjects.GET("/:id/edit", subjectController.Edit)
			subjects.POST("/save", subjectController.Save)
			subjects.POST("/:id/delete", subjectController.Delete)
		}

		mappings := dashboard.Group("/subject-from-dept")
		{
			mappings.GET("", mappingController.List)
			mappings.GET("/new", mappingController.New)
			mappings.GET("/:id/edit", mappingController.Edit)
			mappings.POST("/save", mappingController.Save)
			mappings.POST("/:id/delete", mappingController.Delete)
		}

		enrollments := dashboard.Group("/student-enrollments")
		{
			enrollments.GET("", enrollmentController.List)
			enrollments.GET("/new", enrollmentController.New)
			enrollments.GET("/:id/edit", enrollmentController.Edit)
			enrollments.POST("/save", enrollmentController.Save)
			enrollments.POST("/:id/delete", enrollmentController.Delete)
		}

		adminUsers := dashboard.Group("/admin-users")
		{
			adminUsers.GET("", adminUserController.List)
			adminUsers.GET("/new", adminUserController.New)
			adminUsers.GET("/:id/edit", adminUserController.Edit)
			adminUsers.POST("/save", adminUserController.Save)
			adminUsers.POST("/:id/delete", adminUserController.Delete)
		}

		bulk := dashboard.Group("/bulk")
		{
			bulk.GET("/:type", bulkController.Show)
			bulk.GET("/:type/template.csv", bulkController.CSVTemplate)
			bulk.GET("/:type/template.xlsx", bulkController.ExcelTemplate)
			bulk.POST("/:type/upload", bulkController.Upload)
		}
	}
}
