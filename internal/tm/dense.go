//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tm

import "gonum.org/v1/gonum/mat"

// densefill - an r x c Dense built cell by cell
func densefill(r int, c int, f func(i int, j int) float64) *mat.Dense {
	m := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, f(i, j))
		}
	}
	return m
}
