// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

const insertionSortThreshold = 20

// sortByDist sorts ids[left:right+1] in ascending order of dists[id] using a
// median-of-three quicksort that falls back to insertion sort on short runs.
// Order among equal distances is unspecified.
func sortByDist(ids []int, dists []float64, left, right int) {
	for right-left > insertionSortThreshold {
		median := (left + right) >> 1
		i := left + 1
		j := right
		ids[median], ids[i] = ids[i], ids[median]
		if dists[ids[left]] > dists[ids[right]] {
			ids[left], ids[right] = ids[right], ids[left]
		}
		if dists[ids[i]] > dists[ids[right]] {
			ids[i], ids[right] = ids[right], ids[i]
		}
		if dists[ids[left]] > dists[ids[i]] {
			ids[left], ids[i] = ids[i], ids[left]
		}

		pivot := ids[i]
		pivotDist := dists[pivot]
		for {
			i++
			for dists[ids[i]] < pivotDist {
				i++
			}
			j--
			for dists[ids[j]] > pivotDist {
				j--
			}
			if j < i {
				break
			}
			ids[i], ids[j] = ids[j], ids[i]
		}
		ids[left+1] = ids[j]
		ids[j] = pivot

		// Recurse into the smaller side, loop on the larger one.
		if right-i+1 >= j-left {
			sortByDist(ids, dists, left, j-1)
			left = i
		} else {
			sortByDist(ids, dists, i, right)
			right = j - 1
		}
	}

	for i := left + 1; i <= right; i++ {
		id := ids[i]
		d := dists[id]
		j := i - 1
		for j >= left && dists[ids[j]] > d {
			ids[j+1] = ids[j]
			j--
		}
		ids[j+1] = id
	}
}
