// This file is part of Helios.
//
// Helios is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Helios is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Helios.  If not, see <https://www.gnu.org/licenses/>.

package hardware_test

import "github.com/heliosemu/helios/executor"

type queue struct {
	jobs []executor.Job
}

func (q *queue) Submit(job executor.Job) bool {
	q.jobs = append(q.jobs, job)
	return true
}

func (q *queue) Flush() {
	for _, j := range q.jobs {
		j.Execute()
	}
	q.jobs = q.jobs[:0]
}
