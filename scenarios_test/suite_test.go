// SPDX-License-Identifier: MIT
// Package: pslfsm/scenarios_test
//
// suite_test.go — ginkgo bootstrap for the end-to-end compile-then-simulate
// scenarios below, written in the usual Describe-driven ginkgo/gomega
// style.
package scenarios_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestScenarios(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "End-to-end compile/simulate scenarios")
}
