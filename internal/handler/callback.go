package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Callback-и сети (/onissue, /onissuestatus) — pass-through контракт:
// тело уведомления не обрабатывается, ответ всегда ACK. NACK с
// фиксированным кодом 40000 возвращается только по явному флагу ack=false.

type ackBody struct {
	Status string `json:"status"`
}

type messageAck struct {
	Ack ackBody `json:"ack"`
}

type callbackError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type callbackResponse struct {
	Message messageAck     `json:"message"`
	Error   *callbackError `json:"error,omitempty"`
}

func OnIssue(c *gin.Context) {
	respondAck(c)
}

func OnIssueStatus(c *gin.Context) {
	respondAck(c)
}

func respondAck(c *gin.Context) {
	ack := true
	if v := c.Query("ack"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			ack = parsed
		}
	}
	if ack {
		c.JSON(http.StatusOK, callbackResponse{
			Message: messageAck{Ack: ackBody{Status: "ACK"}},
		})
		return
	}
	c.JSON(http.StatusOK, callbackResponse{
		Message: messageAck{Ack: ackBody{Status: "NACK"}},
		Error: &callbackError{
			Code:    "40000",
			Message: "Some error occurred during processing.",
		},
	})
}
