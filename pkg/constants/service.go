// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// WorkerQueue is the NATS queue group for sync worker subscriptions
const WorkerQueue = "listsync-worker"
