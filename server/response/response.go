package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes the uniform API response body.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
	}

	responseData := gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  http.StatusText(status),
	}

	c.JSON(status, responseData)
}
