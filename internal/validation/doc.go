// Package validation is the field validation engine shared by the login and
// registration forms.
//
// A Session holds the values typed so far, the set of fields the user has
// left at least once (touched), and an ErrorMap keyed by field plus the
// reserved "submit" key. Errors are computed eagerly but only become visible
// once a field is touched or a submit was attempted; State.VisibleError
// applies that rule for renderers.
//
// Each field moves one way from untouched to touched. The form as a whole
// alternates between idle and submitting; Submit rejects a second call while
// the submitter is still running.
package validation
