package routes

import (
	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/enlistment/internal/app/auth"
	"github.com/yigit/enlistment/internal/app/controllers"
	"github.com/yigit/enlistment/internal/middleware"
)

// Controllers groups every HTTP controller
type Controllers struct {
	User       *controllers.UserController
	Role       *controllers.RoleController
	Course     *controllers.CourseController
	Subject    *controllers.SubjectController
	Section    *controllers.SectionController
	Enrollment *controllers.EnrollmentController
}

// SetupRouter configures all application routes. Everything except login and
// user creation requires a bearer token; writes additionally require a capability.
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	requireAuth := authMiddleware.JWTAuth()
	can := authMiddleware.RequireCapability

	// --- Users ---
	users := router.Group("/users")
	{
		users.POST("/login", c.User.Login)
		users.POST("", authMiddleware.OptionalAuth(), c.User.CreateUser)

		protected := users.Group("", requireAuth)
		protected.POST("/logout", c.User.Logout)
		protected.GET("", can(appauth.CapUsersRead), c.User.GetUsers)
		protected.GET("/:id", can(appauth.CapUsersRead), c.User.GetUser)
		// Self-service; the controller checks users:write for other accounts
		protected.PUT("/:id", c.User.UpdateUser)
		protected.PUT("/:id/change-password", c.User.ChangePassword)
		protected.DELETE("/:id", can(appauth.CapUsersWrite), c.User.DeleteUser)
	}

	// --- Roles ---
	roles := router.Group("/roles", requireAuth)
	{
		roles.GET("", can(appauth.CapRolesRead), c.Role.GetRoles)
		roles.GET("/:id", can(appauth.CapRolesRead), c.Role.GetRole)
		roles.POST("", can(appauth.CapRolesWrite), c.Role.CreateRole)
		roles.PUT("/:id", can(appauth.CapRolesWrite), c.Role.UpdateRole)
		roles.DELETE("/:id", can(appauth.CapRolesWrite), c.Role.DeleteRole)
	}

	// --- Courses ---
	courses := router.Group("/courses", requireAuth)
	{
		courses.GET("", can(appauth.CapCoursesRead), c.Course.GetCourses)
		courses.GET("/:id", can(appauth.CapCoursesRead), c.Course.GetCourse)
		courses.POST("", can(appauth.CapCoursesWrite), c.Course.CreateCourse)
		courses.PUT("/:id", can(appauth.CapCoursesWrite), c.Course.UpdateCourse)
		courses.DELETE("/:id", can(appauth.CapCoursesWrite), c.Course.DeleteCourse)
	}

	// --- Subjects ---
	subjects := router.Group("/subjects", requireAuth)
	{
		subjects.GET("", can(appauth.CapSubjectsRead), c.Subject.GetSubjects)
		subjects.GET("/:id", can(appauth.CapSubjectsRead), c.Subject.GetSubject)
		subjects.POST("", can(appauth.CapSubjectsWrite), c.Subject.CreateSubject)
		subjects.PUT("/:id", can(appauth.CapSubjectsWrite), c.Subject.UpdateSubject)
		subjects.DELETE("/:id", can(appauth.CapSubjectsWrite), c.Subject.DeleteSubject)
	}

	// --- Sections ---
	sections := router.Group("/sections", requireAuth)
	{
		sections.GET("", can(appauth.CapSectionsRead), c.Section.GetSections)
		sections.GET("/archived", can(appauth.CapSectionsRead), c.Section.GetArchivedSections)
		sections.GET("/active", can(appauth.CapSectionsRead), c.Section.GetActiveSections)
		sections.GET("/:id", can(appauth.CapSectionsRead), c.Section.GetSection)
		sections.POST("", can(appauth.CapSectionsWrite), c.Section.CreateSection)
		sections.PUT("/:id", can(appauth.CapSectionsWrite), c.Section.UpdateSection)
		sections.PUT("/:id/archive", can(appauth.CapSectionsArchive), c.Section.ArchiveSection)
		sections.DELETE("/:id", can(appauth.CapSectionsWrite), c.Section.DeleteSection)
	}

	// --- Enrollment ---
	enrollment := router.Group("/enrollment", requireAuth)
	{
		enrollment.GET("/enrollments", can(appauth.CapEnrollmentsRead), c.Enrollment.GetEnrollments)
		enrollment.GET("/enrollments/:id", can(appauth.CapEnrollmentsRead), c.Enrollment.GetEnrollment)
		enrollment.GET("/students/:id/enrollments", can(appauth.CapEnrollmentsRead), c.Enrollment.GetStudentEnrollments)
		enrollment.GET("/sections/:id/enrollments", can(appauth.CapEnrollmentsRead), c.Enrollment.GetSectionEnrollments)
		enrollment.POST("/enrollments", can(appauth.CapEnrollmentsWrite), c.Enrollment.CreateEnrollment)
		enrollment.PUT("/enrollments/:id", can(appauth.CapEnrollmentsWrite), c.Enrollment.UpdateEnrollment)
		enrollment.DELETE("/enrollments/:id", can(appauth.CapEnrollmentsWrite), c.Enrollment.DeleteEnrollment)
	}
}
