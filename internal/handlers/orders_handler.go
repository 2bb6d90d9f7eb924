package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sparsh3104/ShopStack/internal/artifacts"
	"github.com/sparsh3104/ShopStack/internal/auth"
	"github.com/sparsh3104/ShopStack/internal/aws"
	"github.com/sparsh3104/ShopStack/internal/orders"
	"github.com/sparsh3104/ShopStack/internal/pipeline"
	"github.com/sparsh3104/ShopStack/internal/validation"
)

// HandlerConfig groups dependencies for the order routes.
type HandlerConfig struct {
	DynamoDBClient   aws.DynamoDBAPI
	SQSClient        aws.SQSAPI
	S3Client         aws.S3API
	S3PresignClient  aws.S3PresignAPI
	CloudWatchClient aws.CloudWatchAPI
	OrdersTable      string
	QueueURL         string
	InvoiceBucket    string
	InvoiceURLTTL    time.Duration
	JWTSecret        []byte
}

// RegisterOrdersRoutes registers the checkout, order read and invoice
// regeneration routes. All of them require authentication.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	orderStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable)
	artifactStore := artifacts.NewStore(cfg.S3Client, cfg.S3PresignClient, cfg.InvoiceBucket, cfg.InvoiceURLTTL)
	publisher := aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)
	pipe := pipeline.New(orderStore, artifactStore, pipeline.NewMetrics(cfg.CloudWatchClient))

	authed := r.Group("/", auth.Middleware(cfg.JWTSecret))

	authed.POST("/orders", createOrder(v, orderStore, publisher))
	authed.GET("/orders/:id", getOrder(orderStore))
	authed.POST("/orders/:id/invoice", regenerateInvoice(orderStore, pipe))
}

// createOrder persists a checkout and publishes the order-created event
// that triggers automatic invoice generation.
func createOrder(v *validatorv10.Validate, orderStore *orders.Store, publisher *aws.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		userID, _ := auth.Identity(c)
		orderID := uuid.NewString()

		items := make([]orders.Item, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, orders.Item{
				ProductID: it.ProductID,
				Name:      it.Name,
				Price:     it.Price,
				Quantity:  it.Quantity,
				ImageURL:  it.ImageURL,
			})
		}

		order := orders.Order{
			OrderID:     orderID,
			UserID:      userID,
			UserEmail:   auth.Email(c),
			Items:       items,
			TotalAmount: req.TotalAmount,
			ShippingAddress: orders.ShippingAddress{
				Address: req.ShippingAddress.Address,
				City:    req.ShippingAddress.City,
				ZipCode: req.ShippingAddress.ZipCode,
				Phone:   req.ShippingAddress.Phone,
			},
			Status:        orders.StatusPending,
			InvoiceStatus: orders.InvoiceNone,
		}

		if err := orderStore.Create(ctx, order); err != nil {
			apiError(c, http.StatusInternalServerError, "internal", "failed to create order")
			return
		}

		if err := publisher.SendOrderCreated(ctx, orderID, c.GetHeader("X-Request-Id")); err != nil {
			// the order exists; its invoice stays "none" until someone
			// regenerates manually
			log.Printf("[api] order-created publish failed order=%s: %v", orderID, err)
			apiError(c, http.StatusInternalServerError, "internal", "failed to enqueue invoice generation")
			return
		}

		c.Header("Location", "/orders/"+orderID)
		c.JSON(http.StatusCreated, gin.H{
			"id":            orderID,
			"status":        orders.StatusPending,
			"invoiceStatus": orders.InvoiceNone,
		})
	}
}

// getOrder returns the order record, invoice fields included. Owners see
// their own orders; admins see all.
func getOrder(orderStore *orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orderID := c.Param("id")

		o, err := orderStore.Get(ctx, orderID)
		if err != nil {
			apiError(c, http.StatusInternalServerError, "internal", "failed to load order")
			return
		}
		if o == nil {
			apiError(c, http.StatusNotFound, "not-found", "order not found")
			return
		}

		userID, role := auth.Identity(c)
		if role != auth.RoleAdmin && userID != o.UserID {
			apiError(c, http.StatusForbidden, "permission-denied", "not your order")
			return
		}

		c.JSON(http.StatusOK, o)
	}
}

// regenerateInvoice is the synchronous re-entry point into the render →
// store → write-back chain. Authorization completes before any rendering
// work starts; an unauthorized call mutates nothing.
func regenerateInvoice(orderStore *orders.Store, pipe *pipeline.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		orderID := c.Param("id")
		if orderID == "" {
			apiError(c, http.StatusBadRequest, "invalid-argument", "order id is required")
			return
		}

		o, err := orderStore.Get(ctx, orderID)
		if err != nil {
			apiError(c, http.StatusInternalServerError, "internal", "failed to load order")
			return
		}
		if o == nil {
			apiError(c, http.StatusNotFound, "not-found", "order not found")
			return
		}

		userID, role := auth.Identity(c)
		if role != auth.RoleAdmin && userID != o.UserID {
			apiError(c, http.StatusForbidden, "permission-denied", "caller may not regenerate this invoice")
			return
		}

		res, err := pipe.Generate(ctx, o)
		if err != nil {
			// the failure is already recorded on the order record; the
			// caller additionally gets a structured rejection
			log.Printf("[api] invoice regeneration failed order=%s: %v", orderID, err)
			apiError(c, http.StatusInternalServerError, "internal", "failed to generate invoice")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"invoiceUrl": res.URL,
		})
	}
}

func apiError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}
