package controllers

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"opdrape-backend/database"
	"opdrape-backend/models"
)

type OrderController struct {
	store *database.Store
}

func NewOrderController(store *database.Store) *OrderController {
	return &OrderController{store: store}
}

var paymentNumberPattern = regexp.MustCompile(`^\d{11}$`)

type orderItemRequest struct {
	ProductID string `json:"product"`
	ColorName string `json:"colorName"`
	SizeName  string `json:"sizeName"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Items           []orderItemRequest     `json:"items"`
	ShippingAddress models.Address         `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PaymentDetails  *models.PaymentDetails `json:"paymentDetails"`
	Notes           string                 `json:"notes"`
}

// validatePaymentDetails enforces the mobile-wallet rules: an 11-digit
// payment number and a transaction id of at least 6 characters.
func validatePaymentDetails(method string, details *models.PaymentDetails) error {
	if !models.IsValidPaymentMethod(method) {
		return newRequestError(http.StatusBadRequest, "Invalid payment method")
	}
	if !models.IsWalletMethod(method) {
		return nil
	}
	if details == nil || details.PaymentNumber == "" || details.TransactionID == "" {
		return newRequestError(http.StatusBadRequest,
			fmt.Sprintf("For %s payments, paymentNumber and transactionId are required", method))
	}
	if !paymentNumberPattern.MatchString(details.PaymentNumber) {
		return newRequestError(http.StatusBadRequest, "Payment number should be a valid 11-digit phone number")
	}
	if len(details.TransactionID) < 6 {
		return newRequestError(http.StatusBadRequest, "Transaction ID is invalid")
	}
	return nil
}

// resolveOrderItem validates one requested line item against the catalog and
// rebuilds it from the authoritative product snapshot: the matched variant's
// color and images, the matched size, and the effective price.
func resolveOrderItem(product *models.Product, req orderItemRequest) (models.OrderItem, error) {
	var item models.OrderItem

	if req.Quantity < 1 {
		return item, newRequestError(http.StatusBadRequest, "Quantity must be at least 1")
	}
	if len(product.ColorVariants) == 0 {
		return item, newRequestError(http.StatusBadRequest,
			fmt.Sprintf("Product %s has incomplete data (missing color variants)", product.Name))
	}

	variant := product.FindColorVariant(req.ColorName)
	if variant == nil {
		return item, newRequestError(http.StatusBadRequest,
			fmt.Sprintf("Color %q not found for product %s", req.ColorName, product.Name))
	}

	size := variant.FindSize(req.SizeName)
	if size == nil {
		return item, newRequestError(http.StatusBadRequest,
			fmt.Sprintf("Size %q not found for color %q for product %s", req.SizeName, req.ColorName, product.Name))
	}

	if size.Quantity < req.Quantity {
		return item, newRequestError(http.StatusBadRequest,
			fmt.Sprintf("Insufficient stock for size %q of color %q for product %s", req.SizeName, req.ColorName, product.Name))
	}

	price, err := product.EffectivePrice()
	if err != nil {
		return item, newRequestError(http.StatusBadRequest, err.Error())
	}

	item = models.OrderItem{
		Product:  product.ID,
		Quantity: req.Quantity,
		Price:    price,
		ColorVariant: models.OrderColorVariant{
			Color:  variant.Color,
			Images: variant.Images,
		},
		Size: models.SizeSelection{
			Name:     size.Name,
			Quantity: req.Quantity,
		},
	}
	return item, nil
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order must contain at least one item"})
		return
	}

	if err := validatePaymentDetails(req.PaymentMethod, req.PaymentDetails); err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		productID, err := primitive.ObjectIDFromHex(itemReq.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id in items"})
			return
		}

		var product models.Product
		if err := oc.store.Products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product %s not found", itemReq.ProductID)})
			return
		}

		item, err := resolveOrderItem(&product, itemReq)
		if err != nil {
			respondError(c, err)
			return
		}
		items = append(items, item)
	}

	paymentStatus := models.PaymentStatusPending
	if models.IsWalletMethod(req.PaymentMethod) {
		// Wallet payments happen client-side before checkout is confirmed.
		paymentStatus = models.PaymentStatusPaid
	}

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		User:            userID,
		Items:           items,
		TotalAmount:     models.OrderTotal(items),
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentDetails:  req.PaymentDetails,
		PaymentStatus:   paymentStatus,
		Status:          models.OrderStatusPending,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := oc.store.Orders.InsertOne(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	// Decrement the exact (variant, size) counter per item. Each update is
	// conditional on sufficient stock, so a concurrent checkout that drained
	// the size between validation and here fails cleanly instead of
	// overselling. On failure, undo the decrements already applied and
	// delete the order.
	applied := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if err := oc.decrementStock(ctx, item); err != nil {
			oc.restoreStock(ctx, applied)
			_, _ = oc.store.Orders.DeleteOne(ctx, bson.M{"_id": order.ID})
			respondError(c, err)
			return
		}
		applied = append(applied, item)
	}

	c.JSON(http.StatusCreated, oc.orderResponse(ctx, &order))
}

// decrementStock applies one conditional, array-element-matched decrement:
// colorVariants.$[v].sizes.$[s].quantity -= qty, guarded so the matched size
// must still hold at least qty units.
func (oc *OrderController) decrementStock(ctx context.Context, item models.OrderItem) error {
	update := bson.M{"$inc": bson.M{"colorVariants.$[v].sizes.$[s].quantity": -item.Size.Quantity}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"v.color.name": item.ColorVariant.Color.Name},
			bson.M{"s.name": item.Size.Name, "s.quantity": bson.M{"$gte": item.Size.Quantity}},
		},
	})

	result, err := oc.store.Products.UpdateOne(ctx, bson.M{"_id": item.Product}, update, opts)
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return newRequestError(http.StatusConflict,
			fmt.Sprintf("Insufficient stock for size %q of color %q", item.Size.Name, item.ColorVariant.Color.Name))
	}
	return nil
}

// restoreStock re-increments the same (variant, size) counters an order's
// items decremented. Used for both compensation and cancellation.
func (oc *OrderController) restoreStock(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		update := bson.M{"$inc": bson.M{"colorVariants.$[v].sizes.$[s].quantity": item.Size.Quantity}}
		opts := options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"v.color.name": item.ColorVariant.Color.Name},
				bson.M{"s.name": item.Size.Name},
			},
		})
		_, _ = oc.store.Products.UpdateOne(ctx, bson.M{"_id": item.Product}, update, opts)
	}
}

func (oc *OrderController) GetUserOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := oc.store.Orders.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]gin.H, 0, len(orders))
	for i := range orders {
		resp = append(resp, oc.orderResponse(ctx, &orders[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.store.Orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.User != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to view this order"})
		return
	}

	c.JSON(http.StatusOK, oc.orderResponse(ctx, &order))
}

// CancelOrder transitions a pending or processing order to cancelled and
// restores stock at the same per-variant/per-size granularity the placement
// decremented.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.store.Orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.User != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to cancel this order"})
		return
	}

	if !models.CanCancel(order.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order cannot be cancelled at this stage"})
		return
	}

	// Guard on the current status so two concurrent cancels cannot both
	// restore stock.
	filter := bson.M{
		"_id":    orderID,
		"status": bson.M{"$in": []string{models.OrderStatusPending, models.OrderStatusProcessing}},
	}
	update := bson.M{"$set": bson.M{"status": models.OrderStatusCancelled, "updatedAt": time.Now()}}
	result, err := oc.store.Orders.UpdateOne(ctx, filter, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}
	if result.ModifiedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order cannot be cancelled at this stage"})
		return
	}

	oc.restoreStock(ctx, order.Items)

	order.Status = models.OrderStatusCancelled
	c.JSON(http.StatusOK, oc.orderResponse(ctx, &order))
}

// orderResponse resolves line-item product refs to minimal display fields.
func (oc *OrderController) orderResponse(ctx context.Context, order *models.Order) gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for _, item := range order.Items {
		entry := gin.H{
			"quantity":     item.Quantity,
			"price":        item.Price,
			"colorVariant": item.ColorVariant,
			"size":         item.Size,
		}

		var summary models.ProductSummary
		if err := oc.store.Products.FindOne(ctx, bson.M{"_id": item.Product}).Decode(&summary); err == nil {
			entry["product"] = summary
		} else {
			entry["product"] = gin.H{"id": item.Product.Hex()}
		}
		items = append(items, entry)
	}

	return gin.H{
		"id":              order.ID.Hex(),
		"user":            order.User.Hex(),
		"items":           items,
		"totalAmount":     order.TotalAmount,
		"shippingAddress": order.ShippingAddress,
		"paymentMethod":   order.PaymentMethod,
		"paymentStatus":   order.PaymentStatus,
		"status":          order.Status,
		"trackingNumber":  order.TrackingNumber,
		"notes":           order.Notes,
		"createdAt":       order.CreatedAt,
	}
}
