package qsim

import (
	"fmt"
	"strings"
)

/*
SolveGF2 returns a basis of the bitstrings s with z·s = 0 (mod 2) for every
outcome z, each n characters long. With enough Simon samples the basis is
the single secret. When the outcomes pin down only the zero vector, that is
what is returned.

The outcomes are laid out as the columns of an n×m matrix augmented with the
n×n identity. Reducing the left block to row echelon form with XOR row
operations leaves zero rows whose right block is a null space vector.
*/
func SolveGF2(outcomes []string, n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("gf2: %w: n must be positive, got %d", ErrDimension, n)
	}
	for _, z := range outcomes {
		if len(z) != n {
			return nil, fmt.Errorf("gf2: %w: %q is not %d bits", ErrDimension, z, n)
		}
		if err := checkBits(z); err != nil {
			return nil, err
		}
	}

	m := len(outcomes)
	mat := augmented(outcomes, n)
	rowEchelon(mat, m)

	var solutions []string
	for _, row := range mat {
		if !zeroRow(row[:m]) {
			continue
		}
		var sb strings.Builder
		for _, b := range row[m:] {
			sb.WriteByte('0' + b)
		}
		solutions = append(solutions, sb.String())
	}

	if len(solutions) == 0 {
		solutions = append(solutions, strings.Repeat("0", n))
	}
	return solutions, nil
}

func augmented(outcomes []string, n int) [][]byte {
	m := len(outcomes)
	mat := make([][]byte, n)

	for i := range mat {
		mat[i] = make([]byte, m+n)
		for j, z := range outcomes {
			if z[i] == '1' {
				mat[i][j] = 1
			}
		}
		mat[i][m+i] = 1
	}
	return mat
}

// rowEchelon reduces the first cols columns, carrying the row operations
// through the rest of each row.
func rowEchelon(mat [][]byte, cols int) {
	h, k := 0, 0

	for h < len(mat) && k < cols {
		pivot := -1
		for i := h; i < len(mat); i++ {
			if mat[i][k] == 1 {
				pivot = i
				break
			}
		}
		if pivot < 0 {
			k++
			continue
		}

		mat[h], mat[pivot] = mat[pivot], mat[h]
		for i := h + 1; i < len(mat); i++ {
			if mat[i][k] == 0 {
				continue
			}
			for j := k; j < len(mat[i]); j++ {
				mat[i][j] ^= mat[h][j]
			}
		}
		h++
		k++
	}
}

func zeroRow(row []byte) bool {
	for _, b := range row {
		if b != 0 {
			return false
		}
	}
	return true
}
