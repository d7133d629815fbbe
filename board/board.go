// Package board holds the content drawn on the artboard: rectangular cards
// stored in an ECS world, with culling and hit testing against the viewport
// camera.
package board

import (
	"fmt"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/artboard/camera"
	"github.com/pthm-cable/artboard/geom"
	"github.com/pthm-cable/artboard/viewport"
)

// Position is the top-left corner of a card in content coordinates.
type Position struct {
	X, Y float64
}

// Extent is the size of a card in content units.
type Extent struct {
	W, H float64
}

// Tint is an RGBA color.
type Tint struct {
	R, G, B, A uint8
}

// Card holds the display data of a card.
type Card struct {
	ID    int
	Label string
	Tint  Tint
}

// Item is a flattened view of one card.
type Item struct {
	ID    int
	Rect  geom.Rect
	Label string
	Tint  Tint
}

// Board is a set of cards. It is not safe for concurrent use.
type Board struct {
	world *ecs.World

	mapper *ecs.Map3[Position, Extent, Card]
	filter *ecs.Filter3[Position, Extent, Card]
	posMap *ecs.Map1[Position]

	byID   map[int]ecs.Entity
	nextID int
}

// New creates an empty board.
func New() *Board {
	world := ecs.NewWorld()
	return &Board{
		world:  world,
		mapper: ecs.NewMap3[Position, Extent, Card](world),
		filter: ecs.NewFilter3[Position, Extent, Card](world),
		posMap: ecs.NewMap1[Position](world),
		byID:   make(map[int]ecs.Entity),
		nextID: 1,
	}
}

// Add places a card and returns its ID.
func (b *Board) Add(r geom.Rect, label string, tint Tint) int {
	id := b.nextID
	b.nextID++

	pos := Position{X: r.X, Y: r.Y}
	ext := Extent{W: r.Width, H: r.Height}
	card := Card{ID: id, Label: label, Tint: tint}
	b.byID[id] = b.mapper.NewEntity(&pos, &ext, &card)
	return id
}

// Remove deletes a card.
func (b *Board) Remove(id int) bool {
	e, ok := b.byID[id]
	if !ok {
		return false
	}
	delete(b.byID, id)
	if b.world.Alive(e) {
		b.world.RemoveEntity(e)
	}
	return true
}

// Move sets the top-left corner of a card.
func (b *Board) Move(id int, x, y float64) bool {
	e, ok := b.byID[id]
	if !ok || !b.world.Alive(e) {
		return false
	}
	pos := b.posMap.Get(e)
	pos.X, pos.Y = x, y
	return true
}

// Len returns the number of cards.
func (b *Board) Len() int {
	return len(b.byID)
}

// Get returns the card with the given ID.
func (b *Board) Get(id int) (Item, bool) {
	e, ok := b.byID[id]
	if !ok || !b.world.Alive(e) {
		return Item{}, false
	}
	pos, ext, card := b.mapper.Get(e)
	return item(pos, ext, card), true
}

func item(pos *Position, ext *Extent, card *Card) Item {
	return Item{
		ID:    card.ID,
		Rect:  geom.Rect{X: pos.X, Y: pos.Y, Width: ext.W, Height: ext.H},
		Label: card.Label,
		Tint:  card.Tint,
	}
}

// Each calls fn for every card in ID order.
func (b *Board) Each(fn func(Item)) {
	for _, it := range b.collect(func(Item) bool { return true }) {
		fn(it)
	}
}

func (b *Board) collect(keep func(Item) bool) []Item {
	var out []Item
	query := b.filter.Query()
	for query.Next() {
		it := item(query.Get())
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Bounds returns the smallest rectangle containing every card, anchored at
// the origin. It is the natural artboard size for the board.
func (b *Board) Bounds() geom.Size {
	var size geom.Size
	query := b.filter.Query()
	for query.Next() {
		pos, ext, _ := query.Get()
		size.Width = max(size.Width, pos.X+ext.W)
		size.Height = max(size.Height, pos.Y+ext.H)
	}
	return size
}

// Visible returns the cards the camera can see, grown by margin content
// units, in ID order.
func (b *Board) Visible(cam *camera.Camera, margin float64) []Item {
	return b.collect(func(it Item) bool { return cam.IsVisible(it.Rect, margin) })
}

// HitTest returns the topmost card (highest ID) under the content point p.
func (b *Board) HitTest(p geom.Coord) (Item, bool) {
	hits := b.collect(func(it Item) bool { return it.Rect.Contains(p) })
	if len(hits) == 0 {
		return Item{}, false
	}
	return hits[len(hits)-1], true
}

// ScrollTo scrolls the viewport so the card is centered.
func (b *Board) ScrollTo(v *viewport.Viewport, id int, opts viewport.ScrollIntoViewOptions) error {
	it, ok := b.Get(id)
	if !ok {
		return fmt.Errorf("card %d not found", id)
	}
	v.ScrollIntoView(it.Rect, opts)
	return nil
}

// Grid fills the board with cols x rows cards of the given size separated by
// gap, cycling through palette for tints. It returns the new IDs.
func (b *Board) Grid(cols, rows int, w, h, gap float64, palette []Tint) []int {
	ids := make([]int, 0, cols*rows)
	for row := range rows {
		for col := range cols {
			n := row*cols + col
			tint := Tint{R: 200, G: 200, B: 200, A: 255}
			if len(palette) > 0 {
				tint = palette[n%len(palette)]
			}
			r := geom.Rect{
				X:      gap + float64(col)*(w+gap),
				Y:      gap + float64(row)*(h+gap),
				Width:  w,
				Height: h,
			}
			ids = append(ids, b.Add(r, fmt.Sprintf("%c%d", 'A'+rune(row%26), col+1), tint))
		}
	}
	return ids
}
