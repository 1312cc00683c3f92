// file: utils/response.go
package utils

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: msg, Data: data})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, Response{Code: code, Msg: msg})
}

// RateLimited 限流响应，附带 Retry-After 响应头（秒）
func RateLimited(c *gin.Context, msg string, retryAfterSec int) {
	c.Header("Retry-After", strconv.Itoa(retryAfterSec))
	c.JSON(http.StatusOK, Response{Code: 4290, Msg: msg, Data: gin.H{"retry_after": retryAfterSec}})
}
