package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/kvv7ma/bento-order-system/models"
)

const MenusPerPage = 12

// PriceUnbounded is the default upper price bound (no limit).
const PriceUnbounded = int64(math.MaxInt64)

// QtyDirection is a quantity-adjustment direction.
type QtyDirection int

const (
	QtyIncrease QtyDirection = iota
	QtyDecrease
)

// Filter is the current search criteria. The zero value of Term plus
// [0, PriceUnbounded] matches everything.
type Filter struct {
	Term     string
	PriceMin int64
	PriceMax int64
}

func defaultFilter() Filter {
	return Filter{PriceMin: 0, PriceMax: PriceUnbounded}
}

func (f Filter) matches(m models.MenuItem) bool {
	if f.Term != "" {
		term := strings.ToLower(f.Term)
		if !strings.Contains(strings.ToLower(m.Name), term) &&
			!strings.Contains(strings.ToLower(m.Description), term) {
			return false
		}
	}
	return m.Price >= f.PriceMin && m.Price <= f.PriceMax
}

// MenuView is the menu page's view-model: the fetched catalog, the per-item
// selected quantities, the filter and the page window. It is pure state; all
// I/O stays with the caller. Not safe for concurrent use; the bot touches it
// only from its single update loop.
type MenuView struct {
	catalog   []models.MenuItem
	filtered  []models.MenuItem
	selection map[int64]int
	filter    Filter
	page      int
	perPage   int
}

func NewMenuView() *MenuView {
	return &MenuView{
		selection: make(map[int64]int),
		filter:    defaultFilter(),
		page:      1,
		perPage:   MenusPerPage,
	}
}

// SetCatalog replaces the catalog wholesale and resets filter and page.
// The selection survives a reload so a retry does not lose chosen quantities.
func (v *MenuView) SetCatalog(items []models.MenuItem) {
	v.catalog = items
	v.filter = defaultFilter()
	v.page = 1
	v.recompute()
}

func (v *MenuView) recompute() {
	v.filtered = v.filtered[:0]
	for _, m := range v.catalog {
		if v.filter.matches(m) {
			v.filtered = append(v.filtered, m)
		}
	}
	v.page = ClampPage(v.page, PageCount(len(v.filtered), v.perPage))
}

// ApplyFilter recomputes the filtered view from the full catalog and resets
// the window to page 1. Applying the same filter twice yields the same view.
func (v *MenuView) ApplyFilter(term string, priceMin, priceMax int64) {
	if priceMin < 0 {
		priceMin = 0
	}
	if priceMax <= 0 {
		priceMax = PriceUnbounded
	}
	v.filter = Filter{Term: strings.TrimSpace(term), PriceMin: priceMin, PriceMax: priceMax}
	v.page = 1
	v.recompute()
}

// SetSearchTerm changes only the text criterion, keeping the price range.
func (v *MenuView) SetSearchTerm(term string) {
	v.ApplyFilter(term, v.filter.PriceMin, v.filter.PriceMax)
}

// SetPriceRange changes only the price criterion, keeping the term.
func (v *MenuView) SetPriceRange(min, max int64) {
	v.ApplyFilter(v.filter.Term, min, max)
}

// ClearFilter resets the criteria to match-everything.
func (v *MenuView) ClearFilter() {
	v.filter = defaultFilter()
	v.page = 1
	v.recompute()
}

func (v *MenuView) Filter() Filter   { return v.filter }
func (v *MenuView) CatalogLen() int  { return len(v.catalog) }
func (v *MenuView) ResultCount() int { return len(v.filtered) }
func (v *MenuView) CurrentPage() int { return v.page }
func (v *MenuView) PageCount() int   { return PageCount(len(v.filtered), v.perPage) }

// SetPage moves the window; pages outside [1, PageCount] are rejected.
func (v *MenuView) SetPage(page int) bool {
	if page < 1 || page > v.PageCount() {
		return false
	}
	v.page = page
	return true
}

// VisibleItems returns the current page's slice of the filtered view, in
// catalog order.
func (v *MenuView) VisibleItems() []models.MenuItem {
	start, end := PageBounds(len(v.filtered), v.page, v.perPage)
	return v.filtered[start:end]
}

// Item looks up a catalog entry by id.
func (v *MenuView) Item(menuID int64) (models.MenuItem, bool) {
	for _, m := range v.catalog {
		if m.ID == menuID {
			return m, true
		}
	}
	return models.MenuItem{}, false
}

// Quantity returns the selected quantity for the item; absent means 0.
func (v *MenuView) Quantity(menuID int64) int {
	return v.selection[menuID]
}

// SelectionSize is the number of items with a positive selected quantity.
func (v *MenuView) SelectionSize() int {
	return len(v.selection)
}

// AdjustQuantity steps the selected quantity by one in the given direction,
// saturating at 0 and models.MaxOrderQuantity. A zero result removes the map
// entry. Returns the new quantity and whether anything changed.
func (v *MenuView) AdjustQuantity(menuID int64, dir QtyDirection) (int, bool) {
	qty := v.selection[menuID]
	next := qty
	switch dir {
	case QtyIncrease:
		if qty < models.MaxOrderQuantity {
			next = qty + 1
		}
	case QtyDecrease:
		if qty > 0 {
			next = qty - 1
		}
	}
	if next == qty {
		return qty, false
	}
	v.setQuantity(menuID, next)
	return next, true
}

// SetQuantity overwrites the selection for the item, clamped to the valid
// range. Ordering from the detail view uses this to force exactly 1.
func (v *MenuView) SetQuantity(menuID int64, qty int) {
	if qty < 0 {
		qty = 0
	}
	if qty > models.MaxOrderQuantity {
		qty = models.MaxOrderQuantity
	}
	v.setQuantity(menuID, qty)
}

func (v *MenuView) setQuantity(menuID int64, qty int) {
	if qty <= 0 {
		delete(v.selection, menuID)
		return
	}
	v.selection[menuID] = qty
}

// Subtotal is price × selected quantity for the item; 0 when unselected.
func (v *MenuView) Subtotal(menuID int64) int64 {
	m, ok := v.Item(menuID)
	if !ok {
		return 0
	}
	return m.Price * int64(v.selection[menuID])
}

// ParsePriceRange turns raw min/max input into an inclusive bound pair.
// Absent or non-numeric values default to 0 and unbounded.
func ParsePriceRange(minRaw, maxRaw string) (int64, int64) {
	min, err := strconv.ParseInt(strings.TrimSpace(minRaw), 10, 64)
	if err != nil || min < 0 {
		min = 0
	}
	max, err := strconv.ParseInt(strings.TrimSpace(maxRaw), 10, 64)
	if err != nil || max <= 0 {
		max = PriceUnbounded
	}
	return min, max
}

var (
	ErrNoQuantity  = errors.New("no quantity selected")
	ErrUnknownMenu = errors.New("menu not in catalog")
)

// OrderPlacer is the slice of the backend client order submission needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, token string, in models.CreateOrderInput) (*models.Order, error)
}

// PlaceOrder submits a single-item order for the current selected quantity.
// An unconfirmed call is a no-op with no side effects: nothing is sent and
// the selection is untouched. On success the item's selection entry is
// cleared; on failure it is kept so the user can retry as-is. Notes are
// always sent empty.
func (v *MenuView) PlaceOrder(ctx context.Context, placer OrderPlacer, token string, menuID int64, confirmed bool) (*models.Order, error) {
	if !confirmed {
		return nil, nil
	}
	qty := v.selection[menuID]
	if qty <= 0 {
		return nil, ErrNoQuantity
	}
	if _, ok := v.Item(menuID); !ok {
		return nil, ErrUnknownMenu
	}
	order, err := placer.CreateOrder(ctx, token, models.CreateOrderInput{
		MenuID:   menuID,
		Quantity: qty,
		Notes:    "",
	})
	if err != nil {
		return nil, err
	}
	v.setQuantity(menuID, 0)
	return order, nil
}
