package component

import "image/color"

// RectSprite draws an entity as a filled box the size of its physics body.
type RectSprite struct {
	Color color.NRGBA
	Layer int
}

var RectSpriteComponent = NewComponent[RectSprite]()
