package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	repository "github.com/shopcraft/storefront/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*models.CartView, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*models.CartView, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
	ValidateCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
	ExpireSweep(ctx context.Context) (int64, error)
}

type cartService struct {
	repo       repository.CartRepository
	products   ProductService
	cartMaxAge time.Duration
}

func NewCartService(repo repository.CartRepository, products ProductService, cartMaxAge time.Duration) CartService {
	return &cartService{repo: repo, products: products, cartMaxAge: cartMaxAge}
}

// GetOrCreateCart returns the user's cart, lazily creating an empty one.
// There is no error condition for a missing cart.
func (s *cartService) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.buildView(ctx, cart)
}

func (s *cartService) loadOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	if !stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	cart = models.NewCart(userID)

	if err := s.repo.CreateCart(ctx, cart); err != nil {
		return nil, errors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartView, error) {

	product, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if !product.IsActive() {
		return nil, errors.InvalidStateError("Product is not available for purchase")
	}

	if product.StockQuantity == 0 {
		return nil, errors.InvalidStateError("Product is out of stock")
	}

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	// one line per product: the stock guard counts what the cart already holds
	requested := req.Quantity + cart.QuantityOf(req.ProductID)
	if requested > product.StockQuantity {
		return nil, errors.BadRequestError(
			fmt.Sprintf("Requested quantity exceeds available stock: %d", product.StockQuantity))
	}

	cart.Items[req.ProductID.String()] = models.CartItem{
		ProductID: req.ProductID,
		Quantity:  requested,
	}
	cart.UpdatedAt = time.Now()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return s.buildView(ctx, cart)
}

// UpdateQuantity sets the line to the requested quantity. A quantity of zero
// or less removes the line entirely; this mirrors the remove operation and is
// deliberately not an error.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*models.CartView, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	key := productID.String()

	if _, exists := cart.Items[key]; !exists {
		return nil, errors.NotFoundError("Item not found in the cart")
	}

	if quantity <= 0 {
		delete(cart.Items, key)
	} else {
		product, err := s.products.GetProductByID(ctx, productID)
		if err != nil {
			return nil, err
		}

		if quantity > product.StockQuantity {
			return nil, errors.BadRequestError(
				fmt.Sprintf("Requested quantity exceeds available stock: %d", product.StockQuantity))
		}

		cart.Items[key] = models.CartItem{ProductID: productID, Quantity: quantity}
	}

	cart.UpdatedAt = time.Now()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return s.buildView(ctx, cart)
}

// RemoveItem is idempotent: removing an absent line is not an error.
func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*models.CartView, error) {

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := productID.String()

	if _, exists := cart.Items[key]; exists {
		delete(cart.Items, key)
		cart.UpdatedAt = time.Now()

		if err := s.repo.UpdateCart(ctx, cart); err != nil {
			return nil, errors.DatabaseError("Failed to update cart").WithError(err)
		}
	}

	return s.buildView(ctx, cart)
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Items = make(map[string]models.CartItem)
	cart.UpdatedAt = time.Now()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return s.buildView(ctx, cart)
}

// ValidateCart recomputes each line's validity against the live product and
// reports a reason per invalid line. The cart itself is never mutated.
func (s *cartService) ValidateCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	return s.buildView(ctx, cart)
}

// ExpireSweep deletes carts idle beyond the configured max age and returns
// the number removed. It is invoked by an external trigger and runs to
// completion synchronously.
func (s *cartService) ExpireSweep(ctx context.Context) (int64, error) {

	cutoff := time.Now().Add(-s.cartMaxAge)

	deleted, err := s.repo.DeleteCartsUpdatedBefore(ctx, cutoff)
	if err != nil {
		return 0, errors.DatabaseError("Failed to sweep expired carts").WithError(err)
	}

	return deleted, nil
}

// buildView derives every aggregate field from the current line set: the item
// counts, the per-line validity and the total of the valid lines. Nothing in
// the view is read back from storage, so the counters cannot drift.
func (s *cartService) buildView(ctx context.Context, cart *models.Cart) (*models.CartView, error) {

	view := &models.CartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     []models.CartLineView{},
		Total:     models.ZeroMoney(),
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}

	for _, item := range cart.Items {

		line := models.CartLineView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Valid:     true,
		}

		product, err := s.products.GetProductByID(ctx, item.ProductID)

		switch {
		case err != nil:
			line.Valid = false
			line.Reason = "product no longer exists"
		case !product.IsActive():
			line.Name = product.Name
			line.UnitPrice = product.Price
			line.Valid = false
			line.Reason = "product is no longer available"
		case product.StockQuantity == 0:
			line.Name = product.Name
			line.UnitPrice = product.Price
			line.Valid = false
			line.Reason = "product is out of stock"
		case item.Quantity > product.StockQuantity:
			line.Name = product.Name
			line.UnitPrice = product.Price
			line.Valid = false
			line.Reason = fmt.Sprintf("quantity exceeds available stock: %d", product.StockQuantity)
		default:
			line.Name = product.Name
			line.UnitPrice = product.Price
		}

		line.LineTotal = line.UnitPrice.MulInt(line.Quantity)

		view.TotalItemCount += line.Quantity
		view.UniqueItemCount++

		if line.Valid {
			view.Total = view.Total.AddMoney(line.LineTotal)
		}

		view.Items = append(view.Items, line)
	}

	return view, nil
}
