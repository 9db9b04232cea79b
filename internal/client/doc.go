// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client application runtime.
//
// It restores the remembered session, keeps the draft flush job running
// while the terminal UI is open and backs the non-interactive commands:
// import, export, watch and the MCP server.
package client
