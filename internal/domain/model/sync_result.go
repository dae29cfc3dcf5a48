// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// SyncResult summarizes one upsert run
type SyncResult struct {
	RunID        string   `json:"run_id"`
	Processed    int      `json:"processed"`
	Created      int      `json:"created"`
	Updated      int      `json:"updated"`
	Skipped      int      `json:"skipped"`
	SkippedNames []string `json:"skipped_names,omitempty"`
}
