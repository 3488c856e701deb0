// SPDX-License-Identifier: EPL-2.0

// Package tone generates pure sine tones for testing an output path.
//
// One period is computed up front and submitted to the transport
// repeatedly, so the cost per completion is a single Submit.
package tone
