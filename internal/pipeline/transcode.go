package pipeline

import (
	"context"

	"github.com/au2001/onepace-stremio/log"
	"github.com/au2001/onepace-stremio/subtitle"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
)

// transcode writes the subtitle files that do not exist yet and returns how many were written.
func transcode(ctx context.Context, options Options, jobs []subtitle.Job) (int, error) {
	if options.Transcoder == nil || len(jobs) == 0 {
		return 0, nil
	}

	fs := options.Store.Fs()
	pending := lo.Filter(jobs, func(job subtitle.Job, _ int) bool {
		exists, err := afero.Exists(fs, job.Output)
		return err != nil || !exists
	})

	p := pool.New().
		WithMaxGoroutines(max(options.Workers, 1)).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for _, job := range pending {
		p.Go(func(ctx context.Context) error {
			log.Debugf("transcoding %s", job.Input)
			return options.Transcoder.Transcode(ctx, job.Input, job.Output)
		})
	}

	if err := p.Wait(); err != nil {
		return 0, err
	}
	return len(pending), nil
}
