// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package geopb holds the plain value types shared by the geo packages.
package geopb

import (
	"fmt"
	"math"
)

// BoundingBox is an axis-aligned box in x/y (longitude/latitude) space.
type BoundingBox struct {
	LoX, HiX float64
	LoY, HiY float64
}

// NewBoundingBox returns a properly initialized bounding box that contains
// nothing until Update is called.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		LoX: math.MaxFloat64,
		HiX: -math.MaxFloat64,
		LoY: math.MaxFloat64,
		HiY: -math.MaxFloat64,
	}
}

// Update updates the BoundingBox coordinates.
func (b *BoundingBox) Update(x, y float64) {
	b.LoX = math.Min(b.LoX, x)
	b.HiX = math.Max(b.HiX, x)
	b.LoY = math.Min(b.LoY, y)
	b.HiY = math.Max(b.HiY, y)
}

// Empty returns whether Update was never called.
func (b *BoundingBox) Empty() bool {
	return b.LoX > b.HiX || b.LoY > b.HiY
}

// IsPoint returns whether the box has zero extent.
func (b *BoundingBox) IsPoint() bool {
	return b.LoX == b.HiX && b.LoY == b.HiY
}

// Intersects returns whether the two boxes share at least one point.
func (b *BoundingBox) Intersects(o *BoundingBox) bool {
	return b.LoX <= o.HiX && o.LoX <= b.HiX && b.LoY <= o.HiY && o.LoY <= b.HiY
}

// Center returns the midpoint of the box.
func (b *BoundingBox) Center() (x, y float64) {
	return b.LoX + (b.HiX-b.LoX)/2.0, b.LoY + (b.HiY-b.LoY)/2.0
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("(%g %g, %g %g)", b.LoX, b.LoY, b.HiX, b.HiY)
}
