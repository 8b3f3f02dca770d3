// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package testutil holds fixtures and helpers shared by package tests: a
// thread-safe log buffer, a reference lidar dataset, rule documents and spy
// modules that record every checker and handler invocation.
package testutil
