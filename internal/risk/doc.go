// Package risk computes a bounded composite risk score for a single coded
// geopolitical event from its quantitative signals: Goldstein conflict
// intensity, average media tone, and thematic content.
//
// Four sub-scores (Goldstein, tone, theme presence, theme intensity), each in
// [0,100], are combined as a weighted average with weights validated at
// construction to sum to 1.0 within tolerance. Absent input fields degrade to
// documented neutral defaults; the scorer itself never fails per call.
//
// The high-risk theme registry is an immutable lookup table built once at
// startup and shared by reference. Matching is a case-insensitive substring
// test so registry tokens hit composite theme identifiers such as
// CRISISLEX_CRISISLEXREC.
package risk
