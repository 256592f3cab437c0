package report

// htmlTemplate is the single-page report document. It must stay
// self-contained: inline styles only, no scripts, no external resources.
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        :root {
            --bg-secondary: #f8fafc;
            --bg-card: #ffffff;
            --text-primary: #1e293b;
            --text-secondary: #64748b;
            --text-muted: #94a3b8;
            --border-color: #e2e8f0;
            --accent-primary: #3b82f6;
            --accent-warning: #f59e0b;
            --accent-error: #ef4444;
            --shadow: 0 1px 3px rgba(0, 0, 0, 0.1);
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background-color: var(--bg-secondary);
            color: var(--text-primary);
            line-height: 1.6;
            min-height: 100vh;
        }

        .container {
            max-width: 1100px;
            margin: 0 auto;
            padding: 2rem;
        }

        .header {
            background: var(--bg-card);
            border-radius: 12px;
            padding: 2rem;
            margin-bottom: 2rem;
            box-shadow: var(--shadow);
        }

        .header h1 {
            font-size: 1.75rem;
            font-weight: 700;
            margin-bottom: 0.5rem;
        }

        .header .meta {
            font-size: 0.875rem;
            color: var(--text-muted);
        }

        .metrics-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 1rem;
        }

        .metric-card {
            background: var(--bg-secondary);
            border-radius: 8px;
            padding: 1.25rem;
        }

        .metric-card .label {
            font-size: 0.75rem;
            text-transform: uppercase;
            letter-spacing: 0.05em;
            color: var(--text-muted);
            margin-bottom: 0.5rem;
        }

        .metric-card .value {
            font-size: 1.5rem;
            font-weight: 700;
            color: var(--text-primary);
            overflow-wrap: anywhere;
        }

        .metric-card .detail {
            font-size: 0.875rem;
            color: var(--text-secondary);
            margin-top: 0.25rem;
        }

        .section {
            background: var(--bg-card);
            border-radius: 12px;
            padding: 1.5rem;
            margin-bottom: 2rem;
            box-shadow: var(--shadow);
        }

        .section-title {
            font-size: 1.125rem;
            font-weight: 600;
            margin-bottom: 1.5rem;
            display: flex;
            align-items: center;
            gap: 0.5rem;
        }

        .section-title::before {
            content: '';
            width: 4px;
            height: 1.25rem;
            background: var(--accent-primary);
            border-radius: 2px;
        }

        .stats-table {
            width: 100%;
            border-collapse: collapse;
        }

        .stats-table th,
        .stats-table td {
            padding: 0.75rem 1rem;
            text-align: left;
            border-bottom: 1px solid var(--border-color);
        }

        .stats-table th {
            font-size: 0.75rem;
            text-transform: uppercase;
            letter-spacing: 0.05em;
            color: var(--text-muted);
            font-weight: 600;
        }

        .stats-table td {
            font-size: 0.875rem;
        }

        .stats-table tr:last-child td {
            border-bottom: none;
        }

        .stats-table tr.warning {
            background-color: rgba(245, 158, 11, 0.08);
        }

        .stats-table tr.critical {
            background-color: rgba(239, 68, 68, 0.08);
        }

        .severity {
            display: inline-block;
            padding: 0.125rem 0.625rem;
            border-radius: 4px;
            font-size: 0.75rem;
            font-weight: 600;
            text-transform: uppercase;
            letter-spacing: 0.05em;
        }

        .severity.warning {
            background-color: rgba(245, 158, 11, 0.15);
            color: var(--accent-warning);
        }

        .severity.critical {
            background-color: rgba(239, 68, 68, 0.15);
            color: var(--accent-error);
        }

        .recommendations {
            list-style: none;
        }

        .recommendations li {
            padding: 0.75rem 1rem;
            background: var(--bg-secondary);
            border-left: 3px solid var(--accent-primary);
            border-radius: 0 8px 8px 0;
            margin-bottom: 0.75rem;
            font-size: 0.875rem;
        }

        .recommendations li:last-child {
            margin-bottom: 0;
        }

        .footer {
            text-align: center;
            padding: 2rem;
            color: var(--text-muted);
            font-size: 0.75rem;
        }
    </style>
</head>
<body>
    <div class="container">
        <!-- Header -->
        <header class="header">
            <h1>{{.Title}}</h1>
            <div class="meta">Generated {{formatTime .GeneratedAt}}</div>
        </header>

        <!-- Summary -->
        <section class="section">
            <h2 class="section-title">Summary</h2>
            <div class="metrics-grid">
                <div class="metric-card">
                    <div class="label">Total Metrics</div>
                    <div class="value">{{.Summary.TotalMetrics}}</div>
                </div>
                <div class="metric-card">
                    <div class="label">Total Duration</div>
                    <div class="value">{{formatMs .Summary.TotalDurationMs}}</div>
                </div>
                <div class="metric-card">
                    <div class="label">Average Duration</div>
                    <div class="value">{{formatMs .Summary.AverageDurationMs}}</div>
                </div>
                <div class="metric-card">
                    <div class="label">Slowest</div>
                    <div class="value">{{.Summary.SlowestMetric.Name}}</div>
                    <div class="detail">{{formatMs .Summary.SlowestMetric.DurationMs}}</div>
                </div>
                <div class="metric-card">
                    <div class="label">Fastest</div>
                    <div class="value">{{.Summary.FastestMetric.Name}}</div>
                    <div class="detail">{{formatMs .Summary.FastestMetric.DurationMs}}</div>
                </div>
            </div>
        </section>

        <!-- Category Breakdown -->
        <section class="section">
            <h2 class="section-title">Performance by Category</h2>
            <table class="stats-table">
                <thead>
                    <tr>
                        <th>Category</th>
                        <th>Count</th>
                        <th>Average</th>
                        <th>Min</th>
                        <th>Max</th>
                        <th>P95</th>
                        <th>P99</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Categories}}
                    <tr>
                        <td>{{.Name}}</td>
                        <td>{{.Stats.Count}}</td>
                        <td>{{formatMs .Stats.Average}}</td>
                        <td>{{formatMs .Stats.Min}}</td>
                        <td>{{formatMs .Stats.Max}}</td>
                        <td>{{formatMs .Stats.P95}}</td>
                        <td>{{formatMs .Stats.P99}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </section>

        {{if .SlowestOperations}}
        <!-- Slowest Operations -->
        <section class="section">
            <h2 class="section-title">Slowest Operations</h2>
            <table class="stats-table">
                <thead>
                    <tr>
                        <th>Name</th>
                        <th>Category</th>
                        <th>Duration</th>
                        <th>Recorded</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .SlowestOperations}}
                    <tr>
                        <td>{{.Name}}</td>
                        <td>{{.Category}}</td>
                        <td>{{formatMs .DurationMs}}</td>
                        <td>{{formatTime .Timestamp}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </section>
        {{end}}

        {{if .Regressions}}
        <!-- Regressions -->
        <section class="section">
            <h2 class="section-title">Performance Regressions</h2>
            <table class="stats-table">
                <thead>
                    <tr>
                        <th>Metric</th>
                        <th>Previous</th>
                        <th>Current</th>
                        <th>Change</th>
                        <th>Severity</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Regressions}}
                    <tr class="{{.Severity}}">
                        <td>{{.MetricName}}</td>
                        <td>{{formatMs .PreviousAverage}}</td>
                        <td>{{formatMs .CurrentAverage}}</td>
                        <td>{{formatPercent .PercentageChange}}</td>
                        <td><span class="severity {{.Severity}}">{{.Severity}}</span></td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </section>
        {{end}}

        {{if .Recommendations}}
        <!-- Recommendations -->
        <section class="section">
            <h2 class="section-title">Recommendations</h2>
            <ul class="recommendations">
                {{range .Recommendations}}
                <li>{{.}}</li>
                {{end}}
            </ul>
        </section>
        {{end}}

        <footer class="footer">
            <p>Generated by Pulse &middot; {{formatTime .GeneratedAt}}</p>
        </footer>
    </div>
</body>
</html>
`
