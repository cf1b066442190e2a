package v1

import (
	"strconv"
	"time"

	"github.com/Behyna/epay/internal/api/contract"
	"github.com/Behyna/epay/internal/api/middleware"
	"github.com/Behyna/epay/internal/api/validator"
	"github.com/Behyna/epay/internal/constants"
	"github.com/Behyna/epay/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger        *zap.Logger
	subscriptions service.SubscriptionService
	transactions  service.TransactionService
	XValidator    validator.IXValidator
	now           func() time.Time
}

func NewHandler(logger *zap.Logger, subscriptions service.SubscriptionService, transactions service.TransactionService,
	XValidator validator.IXValidator,
) *Handler {
	return &Handler{
		logger:        logger,
		subscriptions: subscriptions,
		transactions:  transactions,
		XValidator:    XValidator,
		now:           time.Now,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) CreateSubscription(c *fiber.Ctx) error {
	start := time.Now()

	var handlerRequest CreateSubscriptionRequest
	if responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.String("endpoint", "create_subscription"), zap.String("message", responseError.Message))
		return h.reject(c, responseError)
	}

	cmd := service.CreateSubscriptionCommand{
		CardNo:      handlerRequest.CardNo,
		CVC:         handlerRequest.CVC,
		ExpMonth:    handlerRequest.ExpMonth,
		ExpYear:     handlerRequest.ExpYear,
		Currency:    handlerRequest.Currency,
		Description: handlerRequest.Description,
	}

	sub, err := h.subscriptions.Create(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	h.logger.Info("Subscription created successfully",
		zap.Int64("subscription_id", sub.ID()),
		zap.Duration("duration", time.Since(start)),
	)

	return h.respond(c.Status(fiber.StatusCreated), constants.SubscriptionCreated, newSubscriptionResponse(sub, h.now()))
}

func (h *Handler) ListSubscriptions(c *fiber.Ctx) error {
	subs, err := h.subscriptions.List(c.UserContext())
	if err != nil {
		return err
	}

	now := h.now()
	res := ListSubscriptionsResponse{Subscriptions: make([]SubscriptionResponse, 0, len(subs))}
	for _, sub := range subs {
		res.Subscriptions = append(res.Subscriptions, newSubscriptionResponse(sub, now))
	}
	res.Total = len(res.Subscriptions)

	return h.respond(c, constants.SubscriptionsRetrieved, res)
}

func (h *Handler) GetSubscription(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	sub, err := h.subscriptions.Find(c.UserContext(), id)
	if err != nil {
		return err
	}

	return h.respond(c, constants.SubscriptionRetrieved, newSubscriptionResponse(sub, h.now()))
}

func (h *Handler) DeleteSubscription(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.subscriptions.Delete(c.UserContext(), id); err != nil {
		return err
	}

	h.logger.Info("Subscription deleted", zap.Int64("subscription_id", id))

	return h.respond(c, constants.SubscriptionDeleted, nil)
}

func (h *Handler) AuthorizeSubscription(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var handlerRequest AuthorizeSubscriptionRequest
	if responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.String("endpoint", "authorize_subscription"), zap.String("message", responseError.Message))
		return h.reject(c, responseError)
	}

	tx, err := h.subscriptions.Authorize(c.UserContext(), service.AuthorizeSubscriptionCommand{
		SubscriptionID: id,
		Amount:         handlerRequest.Amount,
		Currency:       handlerRequest.Currency,
		OrderNo:        handlerRequest.OrderNo,
		Description:    handlerRequest.Description,
		InstantCapture: handlerRequest.InstantCapture,
	})
	if err != nil {
		return err
	}

	return h.respond(c, constants.SubscriptionAuthorized, newTransactionResponse(tx, h.now()))
}

func (h *Handler) CreateTransaction(c *fiber.Ctx) error {
	start := time.Now()

	var handlerRequest CreatePaymentRequest
	if responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.String("endpoint", "create_transaction"), zap.String("message", responseError.Message))
		return h.reject(c, responseError)
	}

	tx, err := h.transactions.Create(c.UserContext(), service.CreatePaymentCommand{
		CardNo:         handlerRequest.CardNo,
		CVC:            handlerRequest.CVC,
		ExpMonth:       handlerRequest.ExpMonth,
		ExpYear:        handlerRequest.ExpYear,
		Amount:         handlerRequest.Amount,
		Currency:       handlerRequest.Currency,
		OrderNo:        handlerRequest.OrderNo,
		Description:    handlerRequest.Description,
		InstantCapture: handlerRequest.InstantCapture,
	})
	if err != nil {
		return err
	}

	h.logger.Info("Transaction created successfully",
		zap.Int64("transaction_id", tx.ID()),
		zap.Int64("amount", handlerRequest.Amount),
		zap.Duration("duration", time.Since(start)),
	)

	return h.respond(c.Status(fiber.StatusCreated), constants.TransactionCreated, newTransactionResponse(tx, h.now()))
}

func (h *Handler) GetTransaction(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	tx, err := h.transactions.Find(c.UserContext(), id)
	if err != nil {
		return err
	}

	return h.respond(c, constants.TransactionRetrieved, newTransactionResponse(tx, h.now()))
}

func (h *Handler) CaptureTransaction(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var handlerRequest CaptureRequest
	if responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.reject(c, responseError)
	}

	tx, err := h.transactions.Capture(c.UserContext(), service.CaptureCommand{TransactionID: id, Amount: handlerRequest.Amount})
	if err != nil {
		return err
	}

	return h.respond(c, constants.TransactionCaptured, newTransactionResponse(tx, h.now()))
}

func (h *Handler) CreditTransaction(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var handlerRequest CreditRequest
	if responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.reject(c, responseError)
	}

	tx, err := h.transactions.Credit(c.UserContext(), service.CreditCommand{TransactionID: id, Amount: handlerRequest.Amount})
	if err != nil {
		return err
	}

	return h.respond(c, constants.TransactionCredited, newTransactionResponse(tx, h.now()))
}

func (h *Handler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	tx, err := h.transactions.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}

	return h.respond(c, constants.TransactionDeleted, newTransactionResponse(tx, h.now()))
}

func (h *Handler) respond(c *fiber.Ctx, message string, result any) error {
	return c.JSON(contract.Response{
		Successful: true,
		Code:       "success",
		Message:    message,
		TrackID:    middleware.TrackID(c),
		Result:     result,
	})
}

func (h *Handler) reject(c *fiber.Ctx, responseError contract.Response) error {
	responseError.TrackID = middleware.TrackID(c)
	return c.JSON(responseError)
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.NewServiceError(constants.ErrCodeValidationFailed, fiber.NewError(fiber.StatusUnprocessableEntity, "id is invalid"))
	}

	return id, nil
}
