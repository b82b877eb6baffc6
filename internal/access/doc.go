// Package access implements the access-scoping core shared by every usecase:
// who may list, read or mutate which records, given a role, record ownership,
// a visibility flag and time-bounded coach-athlete delegation links.
//
// The package is pure decision logic over small collaborator interfaces; all
// I/O (directory scan, link lookup) is injected. Admin actors bypass every
// check before any ownership or relationship evaluation.
package access
