package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("syscost", func() {
	var (
		exitCode int
		errOut   *bytes.Buffer
	)

	BeforeEach(func() {
		exitCode = -1
		errOut = &bytes.Buffer{}
		prevExiter, prevErrWriter := cli.OsExiter, cli.ErrWriter
		cli.OsExiter = func(code int) { exitCode = code }
		cli.ErrWriter = errOut
		DeferCleanup(func() {
			cli.OsExiter, cli.ErrWriter = prevExiter, prevErrWriter
		})
	})

	runApp := func(args ...string) error {
		app := newApp()
		app.Writer = io.Discard
		return app.Run(append([]string{"syscost"}, args...))
	}

	It("should list every benchmark", func() {
		names := make([]string, 0, len(commands))
		for _, cmd := range commands {
			names = append(names, cmd.Name)
		}
		Expect(names).To(ConsistOf("buffersize", "fork", "thread", "pread", "chan"))
	})

	It("should require a file name for buffersize", func() {
		Expect(runApp("buffersize")).To(HaveOccurred())
		Expect(exitCode).To(Equal(1))
		Expect(errOut.String()).To(ContainSubstring("missing file name"))
	})

	It("should require two arguments for pread", func() {
		Expect(runApp("pread", "file")).To(HaveOccurred())
		Expect(exitCode).To(Equal(1))
	})

	It("should reject out-of-range fork trial counts", func() {
		Expect(runApp("fork", "--trials", "21")).To(MatchError(ContainSubstring("invalid number of trials: 21")))
	})

	It("should reject unknown thread modes", func() {
		Expect(runApp("thread", "--mode", "fiber")).To(HaveOccurred())
	})

	It("should run a quick channel benchmark", func() {
		Expect(runApp("--no-color", "chan", "--runs", "1", "--window", "5ms")).To(Succeed())
	})

	It("should exit 1 when the file is missing", func() {
		missing := filepath.Join(GinkgoT().TempDir(), "missing")
		Expect(runApp("pread", missing, "4096")).To(HaveOccurred())
		Expect(exitCode).To(Equal(1))
		Expect(errOut.String()).To(ContainSubstring("an error occurred during benchmark"))
	})

	It("should run pread against a real file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "data")
		Expect(os.WriteFile(path, make([]byte, 32*1024), 0o644)).To(Succeed())
		Expect(runApp("pread", "--trials", "2", "--workers", "2", path, "4KiB")).To(Succeed())
	})
})
