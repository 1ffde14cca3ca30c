package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/Behyna/collect-gateway/internal/api/contract"
	"github.com/Behyna/collect-gateway/internal/constants"
	"github.com/Behyna/collect-gateway/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errInvalidJSON = errors.New("invalid JSON")

type Handler struct {
	logger       *zap.Logger
	transactions service.TransactionService
	callbacks    service.CallbackRegistryService
	updates      service.TransactionUpdateService
}

func NewHandler(logger *zap.Logger, transactions service.TransactionService,
	callbacks service.CallbackRegistryService, updates service.TransactionUpdateService) *Handler {
	return &Handler{logger: logger, transactions: transactions, callbacks: callbacks, updates: updates}
}

func (h *Handler) CollectTransaction(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request CollectRequest
	if err := decodeBody(c, &request); err != nil {
		return h.invalidBody(c, err)
	}

	cmd := service.CreateTransactionCommand{
		PayerNumber:       request.PayerNumber,
		ExternalReference: request.ExternalReference,
		PaymentNarration:  request.PaymentNarration,
		Currency:          request.Currency,
		Amount:            string(request.Amount),
		StatusHint:        c.Query("status"),
	}
	if request.AccountNumber != nil {
		cmd.AccountNumber = *request.AccountNumber
	}

	if err := h.transactions.CreateTransaction(ctx, cmd); err != nil {
		h.logger.Warn("Collection request rejected",
			zap.String("externalReference", request.ExternalReference),
			zap.Error(err))
		return err
	}

	h.logger.Info("Collection request accepted",
		zap.String("externalReference", request.ExternalReference),
		zap.String("status", cmd.StatusHint))

	return c.Status(fiber.StatusAccepted).JSON(contract.MessageResponse{Message: constants.MsgCollectAccepted})
}

func (h *Handler) FetchTransactionStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if decoded, err := url.PathUnescape(orderID); err == nil {
		orderID = decoded
	}

	tx, err := h.transactions.GetTransactionByOrderID(c.UserContext(), orderID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(tx)
}

func (h *Handler) RegisterCallback(c *fiber.Ctx) error {
	var request RegisterCallbackRequest
	if err := decodeBody(c, &request); err != nil {
		return h.invalidBody(c, err)
	}

	err := h.callbacks.Register(c.UserContext(), service.RegisterCallbackCommand{CallbackURL: request.CallbackURL})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(contract.MessageResponse{Message: constants.MsgCallbackRegistered})
}

// StoreTransactionUpdate hands the body over untouched; only its syntax is
// checked here.
func (h *Handler) StoreTransactionUpdate(c *fiber.Ctx) error {
	payload := bytes.TrimSpace(c.Body())
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	if !json.Valid(payload) {
		return h.invalidBody(c, errInvalidJSON)
	}

	// fiber reuses the request buffer once the handler returns.
	payload = append([]byte(nil), payload...)

	if err := h.updates.Store(c.UserContext(), payload); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(contract.MessageResponse{Message: constants.MsgTransactionUpdateStored})
}

// decodeBody reads a JSON body whatever the Content-Type. An empty body
// decodes to the zero value.
func decodeBody(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	return json.Unmarshal(body, v)
}

func (h *Handler) invalidBody(c *fiber.Ctx, err error) error {
	h.logger.Warn("Failed to parse body",
		zap.Error(err),
		zap.String("path", c.Path()),
		zap.String("body", string(c.Body())))

	return c.Status(fiber.StatusBadRequest).JSON(contract.MessageResponse{
		Message: constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
	})
}
