//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

//
// misc generic functions
//

// StringMapKeysIntoSlice - the keys of a map[string]T as a sorted slice
func StringMapKeysIntoSlice[T any](mp map[string]T) []string {
	keys := maps.Keys(mp)
	sort.Strings(keys)
	return keys
}

// ToSet - slice into set, i.e. map[T]bool
func ToSet[T comparable](sl []T) map[T]bool {
	s := make(map[T]bool, len(sl))
	for _, v := range sl {
		s[v] = true
	}
	return s
}

// Unique - return only the unique items from a slice
func Unique[T comparable](s []T) []T {
	set := make(map[T]bool, len(s))
	var result []T
	for _, v := range s {
		if !set[v] {
			set[v] = true
			result = append(result, v)
		}
	}
	return result
}

// SetSubtraction - returns [](set(aa) - set(bb))
func SetSubtraction[T comparable](aa []T, bb []T) []T {
	pruner := ToSet(bb)
	var remain []T
	for _, a := range aa {
		if !pruner[a] {
			remain = append(remain, a)
		}
	}
	return Unique(remain)
}

// parsekgrid - "10,20,30" into []int{10, 20, 30}
func parsekgrid(grid string) ([]int, bool) {
	var kk []int
	for _, part := range strings.Split(grid, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, e := strconv.Atoi(part)
		if e != nil || k < 1 {
			return nil, false
		}
		kk = append(kk, k)
	}
	if len(kk) == 0 {
		return nil, false
	}
	return kk, true
}
