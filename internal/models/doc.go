// Package models defines the core domain types for the dish poll.
//
// The poll has a fixed voter roster: every User comes from configuration,
// there is no registration flow. Each user submits one Ballot ranking their
// top three dishes from the Dish catalog, and the leaderboard is derived
// from all stored ballots.
//
// # Design Principles
//
//  1. Ballots are plain maps so they serialize losslessly as JSON.
//  2. Dishes are identified by their catalog ID; everything else about a
//     dish is presentation data the core never inspects.
//  3. User IDs are opaque strings so the roster source can change without
//     touching the voting core.
package models
