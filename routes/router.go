// file: routes/router.go
package routes

import (
	"SecXplore/controllers"
	"SecXplore/middlewares"
	"SecXplore/models"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	apiV1 := r.Group("/api/v1")
	{
		// --- 分类模块路由 ---
		categoryRoutes := apiV1.Group("/categories")
		{
			// 公开接口
			categoryRoutes.GET("", controllers.GetCategoryList)
			categoryRoutes.GET("/:id", controllers.GetCategoryDetail)

			// 管理员接口
			categoryRoutes.POST("", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.CreateCategory)
			categoryRoutes.PUT("/:id", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.UpdateCategory)
			categoryRoutes.DELETE("/:id", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.DeleteCategory)
		}

		// --- 题目模块路由 ---
		challengeRoutes := apiV1.Group("/challenges")
		challengeRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			challengeRoutes.GET("", controllers.ListChallenges)
			challengeRoutes.GET("/:id", controllers.GetChallengeDetail)
			challengeRoutes.POST("/:id/submit", controllers.SubmitFlag)
			challengeRoutes.POST("/:id/hints/:hint_index", controllers.RequestHint)
		}

		// --- 排行榜路由（公开，带短时缓存） ---
		scoreboardRoutes := apiV1.Group("/scoreboard")
		{
			scoreboardRoutes.GET("", controllers.GetScoreboard)
			scoreboardRoutes.GET("/feed", controllers.GetSolveFeed)
		}

		// --- 个人成绩路由 ---
		meRoutes := apiV1.Group("/users/me")
		meRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			meRoutes.GET("/score", controllers.GetMyScore)
			meRoutes.GET("/rank", controllers.GetMyRank)
			meRoutes.GET("/solves", controllers.GetMySolves)
		}

		// --- 管理员路由 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("/challenges", controllers.CreateChallenge)
			adminRoutes.GET("/challenges", controllers.AdminListChallenges)
			adminRoutes.GET("/challenges/:id", controllers.AdminGetChallengeDetail)
			adminRoutes.PUT("/challenges/:id/state", controllers.UpdateChallengeState)
			adminRoutes.POST("/challenges/:id/hints", controllers.AddHint)

			adminRoutes.GET("/submissions", controllers.GetFlagLogs)
			adminRoutes.PUT("/submissions/:id/suspect", controllers.MarkSuspectSubmission)
			adminRoutes.GET("/submissions/compare", controllers.CompareFlagSubmissions)
		}
	}

	return r
}
