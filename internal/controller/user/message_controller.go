package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hxann/eduscore/internal/controller"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/middleware"
	"github.com/hxann/eduscore/internal/service"
)

// MessageController serves direct messages between students and staff.
type MessageController struct {
	messageService service.MessageService
}

func NewMessageController(messageService service.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// SendMessage godoc
// @Summary Send a direct message
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body dto.CreateMessageRequest true "Message data"
// @Success 201 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Receiver not found"
// @Router /messages [post]
func (ctrl *MessageController) SendMessage(c *gin.Context) {
	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	message, err := ctrl.messageService.Send(middleware.CurrentUser(c), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// GetConversation godoc
// @Summary Conversation with another user
// @Description Both directions of the exchange, oldest first.
// @Tags Messages
// @Produce json
// @Param peer_id path int true "Peer user ID"
// @Success 200 {array} dto.MessageResponse
// @Router /messages/conversations/{peer_id} [get]
func (ctrl *MessageController) GetConversation(c *gin.Context) {
	peerID, ok := controller.ParseIDParam(c, "peer_id")
	if !ok {
		return
	}

	messages, err := ctrl.messageService.GetConversation(middleware.CurrentUser(c), peerID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetMessage godoc
// @Summary Get one message
// @Description Visible only to its sender and receiver.
// @Tags Messages
// @Produce json
// @Param message_id path int true "Message ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Message not found or not a participant"
// @Router /messages/{message_id} [get]
func (ctrl *MessageController) GetMessage(c *gin.Context) {
	id, ok := controller.ParseIDParam(c, "message_id")
	if !ok {
		return
	}

	message, err := ctrl.messageService.GetByID(middleware.CurrentUser(c), id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

// GetStudentPartners godoc
// @Summary (Staff) List student conversation partners
// @Tags Messages
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Router /messages/partners/students [get]
func (ctrl *MessageController) GetStudentPartners(c *gin.Context) {
	partners, err := ctrl.messageService.GetStudentPartners(middleware.CurrentUser(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, partners)
}
