package domain

import "math"

// AdjustHalfPoint corrige líneas enteras alejándolas de cero medio punto.
// Las casas publican siempre líneas con .5 para evitar pushes; si la fuente
// omite el medio punto, se lo añadimos. Las líneas no enteras no cambian.
//
// Cero se trata como positivo: 0 → 0.5.
func AdjustHalfPoint(n float64) float64 {
	if n != math.Trunc(n) || math.IsInf(n, 0) {
		return n
	}
	if n < 0 {
		return n - 0.5
	}
	return n + 0.5
}
