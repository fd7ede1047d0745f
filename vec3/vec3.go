/*
 * vec3.go, part of voxdock.
 *
 * Copyright 2026 The voxdock Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 */

// Package vec3 provides the fixed-size 3D floating point vector used
// throughout voxdock's geometry and numerics, plus a dense 3D array with
// linear indexing (Array3D) used for grid maps.
//
// Fl is fixed at build time to one of float32 or float64 the way goChem
// fixes its own numeric width in a single place (see v3/doc.go); voxdock
// uses float64 throughout, matching idock's own `fl` typedef default.
package vec3

import "math"

// Fl is the floating point width used for all geometry and energies.
type Fl = float64

// Vec3 is a point or displacement in 3D Cartesian space.
type Vec3 struct {
	X, Y, Z Fl
}

// New builds a Vec3 from its three components.
func New(x, y, z Fl) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// At returns the d-th component (0=X, 1=Y, 2=Z), panicking on an invalid axis
// the way goChem panics on out-of-range matrix access rather than returning
// an error for a programmer mistake.
func (v Vec3) At(d int) Fl {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		panic("vec3: axis out of range")
	}
}

// Set returns a copy of v with its d-th component replaced.
func (v Vec3) Set(d int, val Fl) Vec3 {
	switch d {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	case 2:
		v.Z = val
	default:
		panic("vec3: axis out of range")
	}
	return v
}

// Add returns v+w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v-w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v scaled componentwise by s.
func (v Vec3) Scale(s Fl) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Mul returns the componentwise (Hadamard) product of v and w.
func (v Vec3) Mul(w Vec3) Vec3 { return Vec3{v.X * w.X, v.Y * w.Y, v.Z * w.Z} }

// Div returns the componentwise quotient of v by w.
func (v Vec3) Div(w Vec3) Vec3 { return Vec3{v.X / w.X, v.Y / w.Y, v.Z / w.Z} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) Fl { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the cross product v×w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// SqDist returns the squared Euclidean distance between v and w.
func (v Vec3) SqDist(w Vec3) Fl {
	d := v.Sub(w)
	return d.Dot(d)
}

// Dist returns the Euclidean distance between v and w.
func (v Vec3) Dist(w Vec3) Fl { return math.Sqrt(v.SqDist(w)) }

// Norm returns the Euclidean norm of v.
func (v Vec3) Norm() Fl { return math.Sqrt(v.Dot(v)) }

// Floor returns the componentwise floor of v.
func (v Vec3) Floor() Vec3 { return Vec3{math.Floor(v.X), math.Floor(v.Y), math.Floor(v.Z)} }

// Ceil returns the componentwise ceiling of v.
func (v Vec3) Ceil() Vec3 { return Vec3{math.Ceil(v.X), math.Ceil(v.Y), math.Ceil(v.Z)} }

// Index3 is a 3D integer index, used for grids, probes, and partitions.
type Index3 struct {
	X, Y, Z int
}

// At returns the d-th component of the index.
func (i Index3) At(d int) int {
	switch d {
	case 0:
		return i.X
	case 1:
		return i.Y
	case 2:
		return i.Z
	default:
		panic("vec3: axis out of range")
	}
}

// Within reports whether i lies in [0, bound) componentwise.
func (i Index3) Within(bound Index3) bool {
	return i.X >= 0 && i.X < bound.X &&
		i.Y >= 0 && i.Y < bound.Y &&
		i.Z >= 0 && i.Z < bound.Z
}

// Add returns i+j.
func (i Index3) Add(j Index3) Index3 { return Index3{i.X + j.X, i.Y + j.Y, i.Z + j.Z} }

// ToVec3 converts an integer index to a Vec3 of the same components.
func (i Index3) ToVec3() Vec3 { return Vec3{Fl(i.X), Fl(i.Y), Fl(i.Z)} }
