// Package tracker holds the pure state transitions behind the bookmark
// list: the filter/query selection with its page-reset rules, and the
// per-bookmark edit form whose required fields, validity, and implicit
// completion transition all hang off the selected read state.
//
// Everything here is value-semantics and side-effect free; the UI feeds
// events in and renders whatever comes back.
package tracker
