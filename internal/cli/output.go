package cli

import (
	"fmt"
	"time"

	"github.com/vk/backupctl/internal/dag"
	"github.com/vk/backupctl/internal/orchestrator"
	"github.com/vk/backupctl/internal/style"
)

func printMessages(p *style.Printer, msgs dag.Messages) {
	for _, m := range msgs {
		if m.Severity() == dag.SeverityError {
			p.Println(p.Fail("error  "), m.String())
		} else {
			p.Println(p.Warn("warning"), m.String())
		}
	}
}

func printReport(p *style.Printer, r *orchestrator.Report) {
	p.Println(p.Header("Run " + r.RunID))
	for _, res := range r.Results {
		var status string
		switch res.Status {
		case orchestrator.Succeeded:
			status = p.Pass(fmt.Sprintf("%-9s", res.Status))
		case orchestrator.Failed:
			status = p.Fail(fmt.Sprintf("%-9s", res.Status))
		default:
			status = p.Warn(fmt.Sprintf("%-9s", res.Status))
		}

		detail := p.Dim(res.Duration.Round(time.Millisecond).String())
		if res.Err != nil {
			detail = p.Dim(res.Err.Error())
		}
		p.Println(" ", status, res.Job, detail)
	}
	p.Printf("%d succeeded, %d failed, %d skipped in %s\n",
		r.Count(orchestrator.Succeeded),
		r.Count(orchestrator.Failed),
		r.Count(orchestrator.Skipped),
		r.Duration.Round(time.Millisecond),
	)
}
