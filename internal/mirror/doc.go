// Package mirror keeps local copies of remote assets current.
//
// Each entry is fetched with a conditional GET using the validators stored
// by the previous successful download. Failures never propagate: when the
// remote is unreachable or answers with an error the existing local file is
// kept, and when there is none the gap is reported at error level. Entries
// are processed one at a time.
package mirror
