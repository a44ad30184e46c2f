package page

import "context"

// Direction is a page scroll direction.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionTop    Direction = "top"
	DirectionBottom Direction = "bottom"
)

// scrollFraction is how much of the viewport height a relative scroll
// moves.
const scrollFraction = 0.8

// IsValid reports whether d is a supported scroll direction.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionTop, DirectionBottom:
		return true
	}
	return false
}

// ScrollPage scrolls the page in the given direction: up and down move by
// 80% of the viewport height, top and bottom jump to the document edges.
// An unsupported direction returns (false, nil) without touching the
// page.
func ScrollPage(ctx context.Context, dom DOM, direction Direction) (bool, error) {
	switch direction {
	case DirectionUp:
		if err := dom.ScrollBy(ctx, -scrollFraction); err != nil {
			return false, err
		}
	case DirectionDown:
		if err := dom.ScrollBy(ctx, scrollFraction); err != nil {
			return false, err
		}
	case DirectionTop:
		if err := dom.ScrollTo(ctx, EdgeTop); err != nil {
			return false, err
		}
	case DirectionBottom:
		if err := dom.ScrollTo(ctx, EdgeBottom); err != nil {
			return false, err
		}
	default:
		return false, nil
	}
	return true, nil
}
