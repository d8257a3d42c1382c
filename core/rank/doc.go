// Package rank turns a lot collection into the ordered list shown to the
// user. The scorer blends distance, price and live availability with
// configurable weights; the ranker runs the filter then sort pipeline over
// annotated lots.
package rank
