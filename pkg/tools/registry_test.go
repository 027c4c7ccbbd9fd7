package tools_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"patter/pkg/tools"
)

func TestTools(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Tools Suite")
}

var _ = Describe("Registry", func() {
	var registry *tools.Registry

	BeforeEach(func() {
		registry = tools.NewRegistry()
	})

	Describe("tool call lifecycle", func() {
		It("should track a call from running to completed", func() {
			Expect(registry.Create("t1", "search_kb")).To(BeTrue())

			call, ok := registry.Get("t1")
			Expect(ok).To(BeTrue())
			Expect(call.Name).To(Equal("search_kb"))
			Expect(call.Status).To(Equal(tools.StatusRunning))

			Expect(registry.SetArguments("t1", `{"q": "policies"}`)).To(BeTrue())

			final, ok := registry.Complete("t1")
			Expect(ok).To(BeTrue())
			Expect(final.Status).To(Equal(tools.StatusCompleted))
			Expect(final.ArgumentsText).To(ContainSubstring(`"q": "policies"`))
		})

		It("should remove completed calls from the active map", func() {
			registry.Create("t1", "search_kb")
			registry.Complete("t1")

			Expect(registry.ActiveCount()).To(BeZero())
			Expect(registry.CompletedCount()).To(Equal(1))

			_, ok := registry.Get("t1")
			Expect(ok).To(BeFalse())
		})

		It("should never re-enter a completed call", func() {
			registry.Create("t1", "search_kb")
			registry.Complete("t1")

			_, ok := registry.Complete("t1")
			Expect(ok).To(BeFalse())
			Expect(registry.CompletedCount()).To(Equal(1))
		})

		It("should refuse duplicate ids", func() {
			Expect(registry.Create("t1", "search_kb")).To(BeTrue())
			Expect(registry.Create("t1", "other")).To(BeFalse())

			call, _ := registry.Get("t1")
			Expect(call.Name).To(Equal("search_kb"))
		})
	})

	Describe("defensive no-ops", func() {
		It("should ignore arguments for unknown ids", func() {
			Expect(registry.SetArguments("ghost", "{}")).To(BeFalse())
		})

		It("should ignore completion for unknown ids", func() {
			_, ok := registry.Complete("ghost")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("discovery pseudo-card", func() {
		It("should open at most once per turn", func() {
			Expect(registry.OpenDiscovery()).To(BeTrue())
			Expect(registry.OpenDiscovery()).To(BeFalse())

			Expect(registry.CloseDiscovery()).To(BeTrue())
			Expect(registry.OpenDiscovery()).To(BeFalse())
		})

		It("should not close when none is open", func() {
			Expect(registry.CloseDiscovery()).To(BeFalse())
		})

		It("should allow discovery again after reset", func() {
			registry.OpenDiscovery()
			registry.Reset()
			Expect(registry.OpenDiscovery()).To(BeTrue())
		})
	})

	Describe("Reset", func() {
		It("should clear all state for a new turn", func() {
			registry.Create("t1", "search_kb")
			registry.Create("t2", "fetch")
			registry.Complete("t1")
			registry.OpenDiscovery()

			registry.Reset()

			Expect(registry.ActiveCount()).To(BeZero())
			Expect(registry.CompletedCount()).To(BeZero())
			Expect(registry.DiscoveryOpen()).To(BeFalse())
		})
	})
})
