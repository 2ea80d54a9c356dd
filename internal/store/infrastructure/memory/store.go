package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/Lexv0lk/coin-shop/internal/store/domain"
)

type cartKey struct {
	userID int64
	itemID int64
}

// Store keeps the whole shop in process memory behind one lock.
// It implements every repository of the domain package and the purchase committer.
type Store struct {
	mu sync.RWMutex

	accounts   map[int64]int64
	categories map[int64]domain.Category
	items      map[int64]domain.Item
	coupons    map[string]domain.Coupon
	cart       map[cartKey]int64
	orders     []domain.Order

	nextCategoryID int64
	nextItemID     int64
}

func New() *Store {
	return &Store{
		accounts:   make(map[int64]int64),
		categories: make(map[int64]domain.Category),
		items:      make(map[int64]domain.Item),
		coupons:    make(map[string]domain.Coupon),
		cart:       make(map[cartKey]int64),
		orders:     make([]domain.Order, 0),
	}
}

func alive(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return &domain.StoreUnavailableError{Op: op, Err: err}
	}
	return nil
}

//region Catalog

func (s *Store) GetItem(ctx context.Context, itemID int64) (domain.Item, error) {
	if err := alive(ctx, "get item"); err != nil {
		return domain.Item{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[itemID]
	if !ok {
		return domain.Item{}, &domain.ItemNotFoundError{ItemID: itemID}
	}

	return s.withCategory(item), nil
}

func (s *Store) ListItems(ctx context.Context, categoryID *int64) ([]domain.Item, error) {
	if err := alive(ctx, "list items"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		if categoryID != nil && item.CategoryID != *categoryID {
			continue
		}
		items = append(items, s.withCategory(item))
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) DecrementStock(ctx context.Context, itemID int64, quantity int64) error {
	if err := alive(ctx, "decrement stock"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.decrementLocked(itemID, quantity)
}

func (s *Store) Restock(ctx context.Context, itemID int64, quantity int64) error {
	if err := alive(ctx, "restock"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := domain.RequirePositive("restock quantity", quantity); err != nil {
		return err
	}

	item, ok := s.items[itemID]
	if !ok {
		return &domain.ItemNotFoundError{ItemID: itemID}
	}

	item.Stock += quantity
	s.items[itemID] = item
	return nil
}

func (s *Store) AddCategory(ctx context.Context, name string) (domain.Category, error) {
	if err := alive(ctx, "add category"); err != nil {
		return domain.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if category, ok := s.categoryByNameLocked(name); ok {
		return category, nil
	}

	s.nextCategoryID++
	category := domain.Category{ID: s.nextCategoryID, Name: name}
	s.categories[category.ID] = category
	return category, nil
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (domain.Category, error) {
	if err := alive(ctx, "get category"); err != nil {
		return domain.Category{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categoryByNameLocked(name)
	if !ok {
		return domain.Category{}, &domain.CategoryNotFoundError{Name: name}
	}

	return category, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := alive(ctx, "list categories"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]domain.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category)
	}

	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (s *Store) AddItem(ctx context.Context, newItem domain.NewItem) (domain.Item, error) {
	if err := alive(ctx, "add item"); err != nil {
		return domain.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[newItem.CategoryID]
	if !ok {
		return domain.Item{}, &domain.CategoryNotFoundError{Name: "#" + strconv.FormatInt(newItem.CategoryID, 10)}
	}

	s.nextItemID++
	item := domain.Item{
		ID:           s.nextItemID,
		Name:         newItem.Name,
		Price:        newItem.Price,
		Stock:        newItem.Stock,
		ImageRef:     newItem.ImageRef,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Payload:      newItem.Payload,
	}
	s.items[item.ID] = item
	return item, nil
}

//endregion

//region Coupons

func (s *Store) GetCoupon(ctx context.Context, code string) (domain.Coupon, error) {
	if err := alive(ctx, "get coupon"); err != nil {
		return domain.Coupon{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	code = domain.NormalizeCouponCode(code)
	coupon, ok := s.coupons[code]
	if !ok {
		return domain.Coupon{}, &domain.InvalidCouponError{Code: code}
	}

	return coupon, nil
}

func (s *Store) SaveCoupon(ctx context.Context, coupon domain.Coupon) error {
	if err := alive(ctx, "save coupon"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coupon.Code = domain.NormalizeCouponCode(coupon.Code)
	s.coupons[coupon.Code] = coupon
	return nil
}

//endregion

//region Ledger

func (s *Store) GetBalance(ctx context.Context, userID int64) (int64, error) {
	if err := alive(ctx, "get balance"); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accounts[userID], nil
}

func (s *Store) Debit(ctx context.Context, userID int64, amount int64) error {
	if err := alive(ctx, "debit"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.debitLocked(userID, amount)
}

func (s *Store) Credit(ctx context.Context, userID int64, amount int64) error {
	if err := alive(ctx, "credit"); err != nil {
		return err
	}

	if err := domain.RequirePositive("credit amount", amount); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[userID] += amount
	return nil
}

//endregion

//region Cart

func (s *Store) AddLine(ctx context.Context, userID int64, itemID int64) (domain.CartLine, error) {
	if err := alive(ctx, "add cart line"); err != nil {
		return domain.CartLine{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return domain.CartLine{}, &domain.ItemNotFoundError{ItemID: itemID}
	}

	key := cartKey{userID: userID, itemID: itemID}
	s.cart[key]++
	return domain.CartLine{UserID: userID, ItemID: itemID, Quantity: s.cart[key]}, nil
}

func (s *Store) ListCart(ctx context.Context, userID int64) ([]domain.CartEntry, error) {
	if err := alive(ctx, "list cart"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cartLocked(userID), nil
}

//endregion

//region Orders

// FetchUserOrders returns the user's orders, newest first.
func (s *Store) FetchUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	if err := alive(ctx, "fetch orders"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0)
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			orders = append(orders, s.orders[i])
		}
	}

	return orders, nil
}

func (s *Store) CommitPurchase(ctx context.Context, commit domain.PurchaseCommit) (domain.Order, error) {
	if err := alive(ctx, "commit purchase"); err != nil {
		return domain.Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[commit.ItemID]
	if !ok {
		return domain.Order{}, &domain.ItemNotFoundError{ItemID: commit.ItemID}
	}

	if item.Stock < commit.Quantity {
		return domain.Order{}, &domain.OutOfStockError{ItemID: item.ID, Available: item.Stock, Requested: commit.Quantity}
	}

	if balance := s.accounts[commit.UserID]; balance < commit.Charge {
		return domain.Order{}, &domain.InsufficientFundsError{Required: commit.Charge, Balance: balance}
	}

	item.Stock -= commit.Quantity
	s.items[item.ID] = item
	s.accounts[commit.UserID] -= commit.Charge

	order := commit.Order()
	s.orders = append(s.orders, order)
	return order, nil
}

func (s *Store) CommitCheckout(ctx context.Context, commit domain.CheckoutCommit) (domain.Order, error) {
	if err := alive(ctx, "commit checkout"); err != nil {
		return domain.Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cartLocked(commit.UserID)
	if len(entries) == 0 {
		return domain.Order{}, &domain.EmptyCartError{UserID: commit.UserID}
	}

	if !domain.CartMatches(entries, commit.Lines) {
		return domain.Order{}, &domain.CartChangedError{UserID: commit.UserID}
	}

	total := domain.CartTotal(entries)
	if balance := s.accounts[commit.UserID]; balance < total {
		return domain.Order{}, &domain.InsufficientFundsError{Required: total, Balance: balance}
	}

	for _, entry := range entries {
		if entry.Item.Stock < entry.Quantity {
			return domain.Order{}, &domain.OutOfStockError{ItemID: entry.Item.ID, Available: entry.Item.Stock, Requested: entry.Quantity}
		}
	}

	for _, entry := range entries {
		item := s.items[entry.Item.ID]
		item.Stock -= entry.Quantity
		s.items[item.ID] = item
		delete(s.cart, cartKey{userID: commit.UserID, itemID: item.ID})
	}
	s.accounts[commit.UserID] -= total

	order := commit.Order()
	s.orders = append(s.orders, order)
	return order, nil
}

//endregion

func (s *Store) decrementLocked(itemID int64, quantity int64) error {
	if err := domain.RequirePositive("decrement quantity", quantity); err != nil {
		return err
	}

	item, ok := s.items[itemID]
	if !ok {
		return &domain.ItemNotFoundError{ItemID: itemID}
	}

	if item.Stock < quantity {
		return &domain.OutOfStockError{ItemID: itemID, Available: item.Stock, Requested: quantity}
	}

	item.Stock -= quantity
	s.items[itemID] = item
	return nil
}

func (s *Store) debitLocked(userID int64, amount int64) error {
	if err := domain.RequirePositive("debit amount", amount); err != nil {
		return err
	}

	balance := s.accounts[userID]
	if balance < amount {
		return &domain.InsufficientFundsError{Required: amount, Balance: balance}
	}

	s.accounts[userID] = balance - amount
	return nil
}

func (s *Store) cartLocked(userID int64) []domain.CartEntry {
	entries := make([]domain.CartEntry, 0)
	for key, quantity := range s.cart {
		if key.userID != userID {
			continue
		}

		item, ok := s.items[key.itemID]
		if !ok {
			continue
		}

		item = s.withCategory(item)
		entries = append(entries, domain.CartEntry{Item: item, UnitPrice: item.Price, Quantity: quantity})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Item.ID < entries[j].Item.ID })
	return entries
}

func (s *Store) categoryByNameLocked(name string) (domain.Category, bool) {
	for _, category := range s.categories {
		if category.Name == name {
			return category, true
		}
	}
	return domain.Category{}, false
}

func (s *Store) withCategory(item domain.Item) domain.Item {
	item.CategoryName = s.categories[item.CategoryID].Name
	return item
}
