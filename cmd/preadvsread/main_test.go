package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/violenttestpen/syscost/internal/report"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("preadvsread", func() {
	var (
		stdout, stderr *bytes.Buffer
		path           string
	)

	BeforeEach(func() {
		stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
		workers, trials, dropMode, coldCache = 2, 3, "none", false
		path = filepath.Join(GinkgoT().TempDir(), "data")
		Expect(os.WriteFile(path, make([]byte, 64*1024), 0o644)).To(Succeed())
	})

	DescribeTable("prints usage and exits 1 on bad arguments",
		func(args ...string) {
			Expect(run(args, nil, report.NewWriter(stdout), stderr)).To(Equal(1))
			Expect(stderr.String()).To(ContainSubstring("Usage: "))
			Expect(stdout.String()).To(BeEmpty())
		},
		Entry("no arguments"),
		Entry("one argument", "file"),
		Entry("three arguments", "file", "4096", "extra"),
		Entry("bad buffer size", "file", "lots"),
	)

	It("should compare both read methods", func() {
		Expect(run([]string{path, "4KiB"}, nil, report.NewWriter(stdout), stderr)).To(Equal(0))
		out := stdout.String()
		Expect(out).To(ContainSubstring("Average time (read, 1 thread): "))
		Expect(out).To(ContainSubstring("Average time (pread, 2 threads): "))
	})

	It("should run a single trial in cold mode", func() {
		coldCache, dropMode = true, "fadvise"
		explicit := map[string]bool{"drop": true}
		Expect(run([]string{path, "4096"}, explicit, report.NewWriter(stdout), stderr)).To(Equal(0))
		Expect(strings.Count(stdout.String(), "Average time")).To(Equal(2))
	})

	It("should keep going when the privileged cache drop fails", func() {
		coldCache = true
		Expect(run([]string{path, "4096"}, nil, report.NewWriter(stdout), stderr)).To(Equal(0))
		Expect(stdout.String()).To(ContainSubstring("Average time (pread, 2 threads): "))
	})

	It("should reject an unknown drop mode", func() {
		dropMode = "magic"
		Expect(run([]string{path, "4096"}, nil, report.NewWriter(stdout), stderr)).To(Equal(1))
	})
})
