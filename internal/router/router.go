package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/helpy/paths"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/psds-microservice/issue-service/api"
	"github.com/psds-microservice/issue-service/internal/handler"
)

func New(issueHandler *handler.IssueHandler) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET(paths.PathHealth, gin.WrapF(handler.Health))
	r.GET(paths.PathReady, gin.WrapF(handler.Ready))
	r.GET(paths.PathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, paths.PathSwagger+"/") })
	r.GET(paths.PathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = paths.PathSwagger + "/index.html"
			c.Request.RequestURI = paths.PathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	// Маршруты исходного API сети сохранены как есть.
	issue := r.Group("/issue")
	{
		issue.POST("/create", issueHandler.Create)
		issue.GET("/get-all-issues/:userId", issueHandler.List)
		issue.GET("/get-issue/:userId/:issueId", issueHandler.Get)
		issue.PUT("/update/:userId/:issueId", issueHandler.Update)
	}

	r.POST("/onissue", handler.OnIssue)
	r.POST("/onissuestatus", handler.OnIssueStatus)

	return r
}
